package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/domain/payroll"
	"github.com/agencydesk/crm-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

const payrollColumns = `
	p.id, p.chatter_id, p.pay_period_id,
	p.hours_worked_minutes, p.gross_sales_cents, p.net_sales_cents,
	p.base_pay_cents, p.commission_cents, p.bonus_total_cents, p.deductions_cents, p.net_pay_cents,
	p.status, p.approved_by_id, p.approved_at, p.paid_at, p.created_at, p.updated_at,
	u.name AS chatter_name, u.email AS chatter_email, u.supervisor_id,
	pp.start_date, pp.end_date,
	ap.name AS approved_by_name
`

const payrollJoins = `
	FROM payrolls p
	JOIN users u ON u.id = p.chatter_id
	JOIN pay_periods pp ON pp.id = p.pay_period_id
	LEFT JOIN users ap ON ap.id = p.approved_by_id
`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.ChatterID, &p.PayPeriodID,
		&p.HoursWorkedMinutes, &p.GrossSalesCents, &p.NetSalesCents,
		&p.BasePayCents, &p.CommissionCents, &p.BonusTotalCents, &p.DeductionsCents, &p.NetPayCents,
		&p.Status, &p.ApprovedByID, &p.ApprovedAt, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
		&p.ChatterName, &p.ChatterEmail, &p.ChatterSupervisorID,
		&p.PeriodStart, &p.PeriodEnd,
		&p.ApprovedByName,
	)
	return p, err
}

// FindOrCreatePeriod implements payroll.PayrollRepository.
func (r *payrollRepository) FindOrCreatePeriod(ctx context.Context, start, end time.Time) (payroll.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	// The no-op DO UPDATE makes RETURNING yield the existing row, so
	// concurrent generation for the same range converges on one period.
	query := `
		INSERT INTO pay_periods (start_date, end_date, status)
		VALUES ($1, $2, 'open')
		ON CONFLICT (start_date, end_date)
		DO UPDATE SET start_date = EXCLUDED.start_date
		RETURNING id, start_date, end_date, status, created_at
	`

	var p payroll.PayPeriod
	err := q.QueryRow(ctx, query, start, end).
		Scan(&p.ID, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt)
	if err != nil {
		return payroll.PayPeriod{}, fmt.Errorf("failed to find or create pay period: %w", err)
	}

	return p, nil
}

// GetPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetPeriod(ctx context.Context, id string) (payroll.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, start_date, end_date, status, created_at FROM pay_periods WHERE id = $1`

	var p payroll.PayPeriod
	err := q.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayPeriod{}, payroll.ErrPayPeriodNotFound
		}
		return payroll.PayPeriod{}, fmt.Errorf("failed to get pay period: %w", err)
	}

	return p, nil
}

// ListPeriods implements payroll.PayrollRepository.
func (r *payrollRepository) ListPeriods(ctx context.Context) ([]payroll.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_date, end_date, status, created_at
		FROM pay_periods
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	periods := []payroll.PayPeriod{}
	for rows.Next() {
		var p payroll.PayPeriod
		if err := rows.Scan(&p.ID, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pay periods: %w", err)
	}

	return periods, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollJoins + ` WHERE p.id = $1`

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

// Upsert implements payroll.PayrollRepository.
func (r *payrollRepository) Upsert(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	// Regeneration refreshes base pay and commission but keeps bonus
	// totals and deductions already applied to the existing row.
	query := `
		INSERT INTO payrolls (
			chatter_id, pay_period_id,
			hours_worked_minutes, gross_sales_cents, net_sales_cents,
			base_pay_cents, commission_cents, bonus_total_cents, deductions_cents, net_pay_cents,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, $6 + $7, 'draft')
		ON CONFLICT (chatter_id, pay_period_id)
		DO UPDATE SET
			hours_worked_minutes = EXCLUDED.hours_worked_minutes,
			gross_sales_cents = EXCLUDED.gross_sales_cents,
			net_sales_cents = EXCLUDED.net_sales_cents,
			base_pay_cents = EXCLUDED.base_pay_cents,
			commission_cents = EXCLUDED.commission_cents,
			net_pay_cents = EXCLUDED.base_pay_cents + EXCLUDED.commission_cents
				+ payrolls.bonus_total_cents - payrolls.deductions_cents,
			updated_at = NOW()
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		p.ChatterID, p.PayPeriodID,
		p.HoursWorkedMinutes, p.GrossSalesCents, p.NetSalesCents,
		p.BasePayCents, p.CommissionCents,
	).Scan(&id)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to upsert payroll: %w", err)
	}

	return r.GetByID(ctx, id)
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.ChatterID != nil {
		conditions = append(conditions, fmt.Sprintf("p.chatter_id = $%d", argIdx))
		args = append(args, *filter.ChatterID)
		argIdx++
	}
	if filter.SupervisorID != nil {
		conditions = append(conditions, fmt.Sprintf("u.supervisor_id = $%d", argIdx))
		args = append(args, *filter.SupervisorID)
		argIdx++
	}
	if filter.PayPeriodID != nil {
		conditions = append(conditions, fmt.Sprintf("p.pay_period_id = $%d", argIdx))
		args = append(args, *filter.PayPeriodID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `SELECT ` + payrollColumns + payrollJoins +
		` WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY pp.start_date DESC, u.name`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	payrolls := []payroll.Payroll{}
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payrolls: %w", err)
	}

	return payrolls, nil
}

// ListBonuses implements payroll.PayrollRepository.
func (r *payrollRepository) ListBonuses(ctx context.Context, payrollID string) ([]payroll.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, bonus_rule_id, description, amount_cents, created_at
		FROM payroll_bonuses
		WHERE payroll_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll bonuses: %w", err)
	}
	defer rows.Close()

	bonuses := []payroll.Bonus{}
	for rows.Next() {
		var b payroll.Bonus
		if err := rows.Scan(&b.ID, &b.PayrollID, &b.BonusRuleID, &b.Description, &b.AmountCents, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payroll bonus: %w", err)
		}
		bonuses = append(bonuses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll bonuses: %w", err)
	}

	return bonuses, nil
}

// InsertBonus implements payroll.PayrollRepository.
func (r *payrollRepository) InsertBonus(ctx context.Context, b payroll.Bonus) (payroll.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	query := `
		INSERT INTO payroll_bonuses (id, payroll_id, bonus_rule_id, description, amount_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, b.ID, b.PayrollID, b.BonusRuleID, b.Description, b.AmountCents).
		Scan(&b.CreatedAt)
	if err != nil {
		return payroll.Bonus{}, fmt.Errorf("failed to insert payroll bonus: %w", err)
	}

	return b, nil
}

// ReplaceAutoBonuses implements payroll.PayrollRepository.
func (r *payrollRepository) ReplaceAutoBonuses(ctx context.Context, payrollID string, bonuses []payroll.Bonus) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx,
		"DELETE FROM payroll_bonuses WHERE payroll_id = $1 AND bonus_rule_id IS NOT NULL",
		payrollID,
	); err != nil {
		return fmt.Errorf("failed to delete auto bonuses: %w", err)
	}

	for _, b := range bonuses {
		b.PayrollID = payrollID
		if _, err := r.InsertBonus(ctx, b); err != nil {
			return err
		}
	}

	return nil
}

// UpdateTotals implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateTotals(ctx context.Context, payrollID string, bonusTotalCents int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET bonus_total_cents = $2,
			net_pay_cents = base_pay_cents + commission_cents + $2 - deductions_cents,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var id string
	if err := q.QueryRow(ctx, query, payrollID, bonusTotalCents).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollNotFound
		}
		return fmt.Errorf("failed to update payroll totals: %w", err)
	}

	return nil
}

// UpdateStatus implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateStatus(ctx context.Context, p payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET status = $2,
			approved_by_id = $3,
			approved_at = $4,
			paid_at = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, p.ID, p.Status, p.ApprovedByID, p.ApprovedAt, p.PaidAt).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollNotFound
		}
		return fmt.Errorf("failed to update payroll status: %w", err)
	}

	return nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
