package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// FindOrCreatePeriod returns the period with these exact dates,
	// creating it if absent. Safe under concurrent generation.
	FindOrCreatePeriod(ctx context.Context, start, end time.Time) (PayPeriod, error)
	GetPeriod(ctx context.Context, id string) (PayPeriod, error)
	ListPeriods(ctx context.Context) ([]PayPeriod, error)

	GetByID(ctx context.Context, id string) (Payroll, error)

	// Upsert inserts or updates the payroll keyed on (chatter, period).
	// Existing bonus totals and deductions are preserved on update.
	Upsert(ctx context.Context, p Payroll) (Payroll, error)

	List(ctx context.Context, filter PayrollFilter) ([]Payroll, error)

	ListBonuses(ctx context.Context, payrollID string) ([]Bonus, error)
	InsertBonus(ctx context.Context, b Bonus) (Bonus, error)

	// ReplaceAutoBonuses deletes rule-linked bonus rows and inserts the
	// given replacements. Manual rows are untouched.
	ReplaceAutoBonuses(ctx context.Context, payrollID string, bonuses []Bonus) error

	// UpdateTotals sets the bonus total and recomputes net pay.
	UpdateTotals(ctx context.Context, payrollID string, bonusTotalCents int64) error

	UpdateStatus(ctx context.Context, p Payroll) error
}

// PayrollService defines business logic for payroll operations
type PayrollService interface {
	// Generate builds draft payrolls for every chatter with approved
	// shifts or KPI activity in the range. Re-running is idempotent.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PayPeriodResponse, error)
	ListPeriods(ctx context.Context) ([]PayPeriodResponse, error)

	// ApplyBonuses re-evaluates active bonus rules against fresh KPI
	// sums and replaces the payroll's rule-linked bonus lines.
	ApplyBonuses(ctx context.Context, payrollID string) (PayrollResponse, error)

	AddManualBonus(ctx context.Context, payrollID string, req CreateBonusRequest) (PayrollResponse, error)

	Approve(ctx context.Context, payrollID string) (PayrollResponse, error)
	Revert(ctx context.Context, payrollID string) (PayrollResponse, error)
	MarkPaid(ctx context.Context, payrollID string) (PayrollResponse, error)

	List(ctx context.Context, filter PayrollFilter) ([]PayrollResponse, error)
	Get(ctx context.Context, payrollID string) (PayrollResponse, error)

	// ExportCSV and ExportXLSX render a pay period's payrolls for download.
	ExportCSV(ctx context.Context, payPeriodID string) ([]byte, string, error)
	ExportXLSX(ctx context.Context, payPeriodID string) ([]byte, string, error)
}
