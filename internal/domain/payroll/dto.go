package payroll

import (
	"time"

	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
)

// GenerateRequest selects the pay period to generate. Both dates empty
// means the trailing seven days ending now.
type GenerateRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ParseRange resolves the requested range. Unparseable dates or a start
// that is not strictly before the end fail with ErrInvalidRange.
func (r *GenerateRequest) ParseRange(now time.Time) (time.Time, time.Time, error) {
	if r.StartDate == "" && r.EndDate == "" {
		end := now.UTC()
		return end.AddDate(0, 0, -7), end, nil
	}

	start, ok := validator.ParseFlexibleTime(r.StartDate)
	if !ok {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	end, ok := validator.ParseFlexibleTime(r.EndDate)
	if !ok {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}

// CreatePeriodRequest opens a pay period ahead of generation. Unlike
// GenerateRequest, both dates are required.
type CreatePeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *CreatePeriodRequest) ParseRange() (time.Time, time.Time, error) {
	if r.StartDate == "" || r.EndDate == "" {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}

	start, ok := validator.ParseFlexibleTime(r.StartDate)
	if !ok {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	end, ok := validator.ParseFlexibleTime(r.EndDate)
	if !ok {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}

type CreateBonusRequest struct {
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
}

func (r *CreateBonusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if r.AmountCents == 0 {
		errs = append(errs, validator.ValidationError{Field: "amount_cents", Message: "must be non-zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollFilter struct {
	ChatterID    *string
	SupervisorID *string
	PayPeriodID  *string
	Status       *Status
	Limit        int
}

type PayPeriodResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type BonusResponse struct {
	ID          string  `json:"id"`
	BonusRuleID *string `json:"bonus_rule_id,omitempty"`
	Description string  `json:"description"`
	AmountCents int64   `json:"amount_cents"`
	Manual      bool    `json:"manual"`
}

type PayrollResponse struct {
	ID                 string          `json:"id"`
	ChatterID          string          `json:"chatter_id"`
	ChatterName        *string         `json:"chatter_name,omitempty"`
	PayPeriodID        string          `json:"pay_period_id"`
	PeriodStart        *string         `json:"period_start,omitempty"`
	PeriodEnd          *string         `json:"period_end,omitempty"`
	HoursWorkedMinutes int64           `json:"hours_worked_minutes"`
	GrossSalesCents    int64           `json:"gross_sales_cents"`
	NetSalesCents      int64           `json:"net_sales_cents"`
	BasePayCents       int64           `json:"base_pay_cents"`
	CommissionCents    int64           `json:"commission_cents"`
	BonusTotalCents    int64           `json:"bonus_total_cents"`
	DeductionsCents    int64           `json:"deductions_cents"`
	NetPayCents        int64           `json:"net_pay_cents"`
	Status             string          `json:"status"`
	ApprovedByName     *string         `json:"approved_by_name,omitempty"`
	ApprovedAt         *string         `json:"approved_at,omitempty"`
	PaidAt             *string         `json:"paid_at,omitempty"`
	Bonuses            []BonusResponse `json:"bonuses,omitempty"`
}

type GenerateResponse struct {
	PayPeriod PayPeriodResponse `json:"pay_period"`
	Generated int               `json:"generated"`
}

func ToPeriodResponse(p PayPeriod) PayPeriodResponse {
	return PayPeriodResponse{
		ID:        p.ID,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Status:    string(p.Status),
	}
}

func ToBonusResponse(b Bonus) BonusResponse {
	return BonusResponse{
		ID:          b.ID,
		BonusRuleID: b.BonusRuleID,
		Description: b.Description,
		AmountCents: b.AmountCents,
		Manual:      b.IsManual(),
	}
}

func ToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:                 p.ID,
		ChatterID:          p.ChatterID,
		ChatterName:        p.ChatterName,
		PayPeriodID:        p.PayPeriodID,
		HoursWorkedMinutes: p.HoursWorkedMinutes,
		GrossSalesCents:    p.GrossSalesCents,
		NetSalesCents:      p.NetSalesCents,
		BasePayCents:       p.BasePayCents,
		CommissionCents:    p.CommissionCents,
		BonusTotalCents:    p.BonusTotalCents,
		DeductionsCents:    p.DeductionsCents,
		NetPayCents:        p.NetPayCents,
		Status:             string(p.Status),
		ApprovedByName:     p.ApprovedByName,
	}
	if p.PeriodStart != nil {
		s := p.PeriodStart.Format("2006-01-02")
		resp.PeriodStart = &s
	}
	if p.PeriodEnd != nil {
		s := p.PeriodEnd.Format("2006-01-02")
		resp.PeriodEnd = &s
	}
	if p.ApprovedAt != nil {
		s := p.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	if p.PaidAt != nil {
		s := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	return resp
}
