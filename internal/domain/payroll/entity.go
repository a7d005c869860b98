package payroll

import "time"

type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "open"
	PeriodClosed PeriodStatus = "closed"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

// PayPeriod is a date range payrolls are generated against. Periods are
// keyed by their exact start and end dates so regeneration reuses them.
type PayPeriod struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
	CreatedAt time.Time
}

// Payroll is one chatter's payslip for one pay period. All amounts are
// integer cents; net pay is base + commission + bonuses - deductions.
type Payroll struct {
	ID                 string
	ChatterID          string
	PayPeriodID        string
	HoursWorkedMinutes int64
	GrossSalesCents    int64
	NetSalesCents      int64
	BasePayCents       int64
	CommissionCents    int64
	BonusTotalCents    int64
	DeductionsCents    int64
	NetPayCents        int64
	Status             Status
	ApprovedByID       *string
	ApprovedAt         *time.Time
	PaidAt             *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	ChatterName         *string
	ChatterEmail        *string
	ChatterSupervisorID *string
	PeriodStart         *time.Time
	PeriodEnd           *time.Time
	ApprovedByName      *string
}

// Bonus is one awarded bonus line on a payroll. A nil BonusRuleID marks
// a manual award; rule-linked rows are replaced on re-evaluation,
// manual rows survive it.
type Bonus struct {
	ID          string
	PayrollID   string
	BonusRuleID *string
	Description string
	AmountCents int64
	CreatedAt   time.Time
}

func (b Bonus) IsManual() bool {
	return b.BonusRuleID == nil
}

func (p Payroll) IsDraft() bool    { return p.Status == StatusDraft }
func (p Payroll) IsApproved() bool { return p.Status == StatusApproved }
func (p Payroll) IsPaid() bool     { return p.Status == StatusPaid }
