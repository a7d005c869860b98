package bonus

import (
	"strings"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
)

var validTypes = []string{
	string(TypePercentage),
	string(TypeFlat),
	string(TypeMilestone),
}

var validTargets = []string{
	string(TargetRevenue),
	string(TargetNetRevenue),
	string(TargetMessagesSent),
	string(TargetNewSubs),
	string(TargetTips),
	string(TargetManual),
}

type CreateRuleRequest struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description,omitempty"`
	Type            string   `json:"type"`
	TargetType      string   `json:"target_type"`
	ThresholdCents  *int64   `json:"threshold_cents,omitempty"`
	TargetThreshold *int64   `json:"target_threshold,omitempty"`
	PercentageBps   *int64   `json:"percentage_bps,omitempty"`
	FlatAmountCents *int64   `json:"flat_amount_cents,omitempty"`
	Multiplier      *float64 `json:"multiplier,omitempty"`
	CreatorID       *string  `json:"creator_id,omitempty"`
	StartDate       *string  `json:"start_date,omitempty"`
	EndDate         *string  `json:"end_date,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

func (r *CreateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(strings.ToLower(r.Type), validTypes) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of percentage, flat, milestone"})
	}
	if r.Multiplier != nil && *r.Multiplier <= 0 {
		errs = append(errs, validator.ValidationError{Field: "multiplier", Message: "must be greater than zero"})
	}
	for field, v := range map[string]*string{"start_date": r.StartDate, "end_date": r.EndDate} {
		if v != nil && *v != "" {
			if _, ok := validator.ParseFlexibleTime(*v); !ok {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be a valid date"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToRule normalizes the request into a rule: the name is trimmed, an
// unrecognized target type becomes manual, and a missing multiplier
// defaults to 1.
func (r *CreateRuleRequest) ToRule() Rule {
	target := strings.ToLower(strings.TrimSpace(r.TargetType))
	if !validator.IsInSlice(target, validTargets) {
		target = string(TargetManual)
	}
	multiplier := 1.0
	if r.Multiplier != nil {
		multiplier = *r.Multiplier
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	rule := Rule{
		Name:            strings.TrimSpace(r.Name),
		Description:     r.Description,
		Type:            RuleType(strings.ToLower(r.Type)),
		TargetType:      TargetType(target),
		ThresholdCents:  r.ThresholdCents,
		TargetThreshold: r.TargetThreshold,
		PercentageBps:   r.PercentageBps,
		FlatAmountCents: r.FlatAmountCents,
		Multiplier:      &multiplier,
		CreatorID:       r.CreatorID,
		IsActive:        active,
	}
	if r.StartDate != nil && *r.StartDate != "" {
		if t, ok := validator.ParseFlexibleTime(*r.StartDate); ok {
			rule.StartDate = &t
		}
	}
	if r.EndDate != nil && *r.EndDate != "" {
		if t, ok := validator.ParseFlexibleTime(*r.EndDate); ok {
			rule.EndDate = &t
		}
	}
	return rule
}

type UpdateRuleRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Type            *string  `json:"type,omitempty"`
	TargetType      *string  `json:"target_type,omitempty"`
	ThresholdCents  *int64   `json:"threshold_cents,omitempty"`
	TargetThreshold *int64   `json:"target_threshold,omitempty"`
	PercentageBps   *int64   `json:"percentage_bps,omitempty"`
	FlatAmountCents *int64   `json:"flat_amount_cents,omitempty"`
	Multiplier      *float64 `json:"multiplier,omitempty"`
	CreatorID       *string  `json:"creator_id,omitempty"`
	StartDate       *string  `json:"start_date,omitempty"`
	EndDate         *string  `json:"end_date,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

func (r *UpdateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "cannot be empty"})
	}
	if r.Type != nil && !validator.IsInSlice(strings.ToLower(*r.Type), validTypes) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of percentage, flat, milestone"})
	}
	if r.TargetType != nil && !validator.IsInSlice(strings.ToLower(*r.TargetType), validTargets) {
		errs = append(errs, validator.ValidationError{Field: "target_type", Message: "is not a recognized target"})
	}
	if r.Multiplier != nil && *r.Multiplier <= 0 {
		errs = append(errs, validator.ValidationError{Field: "multiplier", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PreviewRequest evaluates an unsaved rule against every active
// chatter's recent KPIs without persisting anything.
type PreviewRequest struct {
	Rule      CreateRuleRequest `json:"rule"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.Rule.Validate(); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}
	for field, v := range map[string]string{"start_date": r.StartDate, "end_date": r.EndDate} {
		if v != "" {
			if _, ok := validator.ParseFlexibleTime(v); !ok {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be a valid date"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PreviewLine struct {
	ChatterID   string `json:"chatter_id"`
	ChatterName string `json:"chatter_name"`
	Qualifies   bool   `json:"qualifies"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description,omitempty"`
}

type PreviewResponse struct {
	Lines            []PreviewLine `json:"lines"`
	TotalPayoutCents int64         `json:"total_payout_cents"`
	QualifiedCount   int           `json:"qualified_count"`
}

type RuleResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     *string  `json:"description,omitempty"`
	Type            string   `json:"type"`
	TargetType      string   `json:"target_type"`
	ThresholdCents  *int64   `json:"threshold_cents,omitempty"`
	TargetThreshold *int64   `json:"target_threshold,omitempty"`
	PercentageBps   *int64   `json:"percentage_bps,omitempty"`
	FlatAmountCents *int64   `json:"flat_amount_cents,omitempty"`
	Multiplier      *float64 `json:"multiplier,omitempty"`
	CreatorID       *string  `json:"creator_id,omitempty"`
	StartDate       *string  `json:"start_date,omitempty"`
	EndDate         *string  `json:"end_date,omitempty"`
	IsActive        bool     `json:"is_active"`
	CreatedAt       string   `json:"created_at"`
}

func ToResponse(r Rule) RuleResponse {
	resp := RuleResponse{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Type:            string(r.Type),
		TargetType:      string(r.TargetType),
		ThresholdCents:  r.ThresholdCents,
		TargetThreshold: r.TargetThreshold,
		PercentageBps:   r.PercentageBps,
		FlatAmountCents: r.FlatAmountCents,
		Multiplier:      r.Multiplier,
		CreatorID:       r.CreatorID,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.StartDate != nil {
		s := r.StartDate.Format("2006-01-02")
		resp.StartDate = &s
	}
	if r.EndDate != nil {
		s := r.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}
