package kpi

import (
	"time"

	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
)

type CreateSnapshotRequest struct {
	ChatterID         string `json:"chatter_id"`
	CreatorID         string `json:"creator_id"`
	SnapshotDate      string `json:"snapshot_date"`
	RevenueCents      *int64 `json:"revenue_cents,omitempty"`
	MessagesSent      *int64 `json:"messages_sent,omitempty"`
	NewSubs           *int64 `json:"new_subs,omitempty"`
	TipsReceivedCents *int64 `json:"tips_received_cents,omitempty"`
}

func (r *CreateSnapshotRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ChatterID) {
		errs = append(errs, validator.ValidationError{Field: "chatter_id", Message: "is required"})
	}
	if validator.IsEmpty(r.CreatorID) {
		errs = append(errs, validator.ValidationError{Field: "creator_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.SnapshotDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "snapshot_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	for field, v := range map[string]*int64{
		"revenue_cents":       r.RevenueCents,
		"messages_sent":       r.MessagesSent,
		"new_subs":            r.NewSubs,
		"tips_received_cents": r.TipsReceivedCents,
	} {
		if v != nil && *v < 0 {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SnapshotFilter struct {
	ChatterID *string
	From      *time.Time
	To        *time.Time
	Limit     int
}

type SnapshotResponse struct {
	ID                 string  `json:"id"`
	ChatterID          string  `json:"chatter_id"`
	ChatterName        *string `json:"chatter_name,omitempty"`
	CreatorID          string  `json:"creator_id"`
	CreatorDisplayName *string `json:"creator_display_name,omitempty"`
	SnapshotDate       string  `json:"snapshot_date"`
	RevenueCents       *int64  `json:"revenue_cents,omitempty"`
	MessagesSent       *int64  `json:"messages_sent,omitempty"`
	NewSubs            *int64  `json:"new_subs,omitempty"`
	TipsReceivedCents  *int64  `json:"tips_received_cents,omitempty"`
	Source             string  `json:"source"`
}

func ToResponse(s Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:                 s.ID,
		ChatterID:          s.ChatterID,
		ChatterName:        s.ChatterName,
		CreatorID:          s.CreatorID,
		CreatorDisplayName: s.CreatorDisplayName,
		SnapshotDate:       s.SnapshotDate.Format("2006-01-02"),
		RevenueCents:       s.RevenueCents,
		MessagesSent:       s.MessagesSent,
		NewSubs:            s.NewSubs,
		TipsReceivedCents:  s.TipsReceivedCents,
		Source:             string(s.Source),
	}
}
