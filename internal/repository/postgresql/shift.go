package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/domain/shift"
	"github.com/agencydesk/crm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

const shiftColumns = `
	s.id, s.chatter_id, s.clock_in, s.clock_out, s.break_minutes, s.notes,
	s.approved_by_id, s.approved_at, s.created_at, s.updated_at,
	u.name AS chatter_name, u.supervisor_id, u.hourly_rate_cents,
	ap.name AS approved_by_name
`

const shiftJoins = `
	FROM shifts s
	JOIN users u ON u.id = s.chatter_id
	LEFT JOIN users ap ON ap.id = s.approved_by_id
`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID, &s.ChatterID, &s.ClockIn, &s.ClockOut, &s.BreakMinutes, &s.Notes,
		&s.ApprovedByID, &s.ApprovedAt, &s.CreatedAt, &s.UpdatedAt,
		&s.ChatterName, &s.ChatterSupervisorID, &s.ChatterHourlyRateCents,
		&s.ApprovedByName,
	)
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (chatter_id, clock_in, break_minutes, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.ChatterID, s.ClockIn, s.BreakMinutes, s.Notes).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + shiftJoins + ` WHERE s.id = $1`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// GetOpenShift implements shift.ShiftRepository.
func (r *shiftRepository) GetOpenShift(ctx context.Context, chatterID string) (*shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + shiftJoins + `
		WHERE s.chatter_id = $1
		  AND s.clock_out IS NULL
		ORDER BY s.clock_in DESC
		LIMIT 1
	`

	s, err := scanShift(q.QueryRow(ctx, query, chatterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open shift: %w", err)
	}

	return &s, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET clock_out = $2,
			break_minutes = $3,
			notes = $4,
			approved_by_id = $5,
			approved_at = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		s.ID, s.ClockOut, s.BreakMinutes, s.Notes, s.ApprovedByID, s.ApprovedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to update shift: %w", err)
	}

	return nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.ChatterID != nil {
		conditions = append(conditions, fmt.Sprintf("s.chatter_id = $%d", argIdx))
		args = append(args, *filter.ChatterID)
		argIdx++
	}
	if filter.SupervisorID != nil {
		conditions = append(conditions, fmt.Sprintf("u.supervisor_id = $%d", argIdx))
		args = append(args, *filter.SupervisorID)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("s.clock_in >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("s.clock_in <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.PendingOnly {
		conditions = append(conditions, "s.clock_out IS NOT NULL AND s.approved_at IS NULL")
	}

	query := `SELECT ` + shiftColumns + shiftJoins +
		` WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY s.clock_in DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// ListApprovedClosedInRange implements shift.ShiftRepository.
func (r *shiftRepository) ListApprovedClosedInRange(ctx context.Context, start, end time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + shiftJoins + `
		WHERE s.approved_at IS NOT NULL
		  AND s.clock_out IS NOT NULL
		  AND s.clock_in >= $1
		  AND s.clock_out <= $2
		ORDER BY s.chatter_id, s.clock_in
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved shifts: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

func collectShifts(rows pgx.Rows) ([]shift.Shift, error) {
	shifts := []shift.Shift{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}
