package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/agencydesk/crm-backend-go/internal/domain/assignment"
	"github.com/agencydesk/crm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type assignmentRepository struct {
	db *database.DB
}

const assignmentColumns = `
	a.id, a.chatter_id, a.creator_id, a.is_primary, a.assigned_at, a.unassigned_at,
	u.name AS chatter_name, c.display_name AS creator_display_name
`

func scanAssignment(row pgx.Row) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := row.Scan(
		&a.ID, &a.ChatterID, &a.CreatorID, &a.IsPrimary, &a.AssignedAt, &a.UnassignedAt,
		&a.ChatterName, &a.CreatorDisplayName,
	)
	return a, err
}

// GetByID implements assignment.AssignmentRepository.
func (r *assignmentRepository) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments a
		JOIN users u ON u.id = a.chatter_id
		JOIN creators c ON c.id = a.creator_id
		WHERE a.id = $1
	`

	a, err := scanAssignment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.Assignment{}, assignment.ErrAssignmentNotFound
		}
		return assignment.Assignment{}, fmt.Errorf("failed to get assignment: %w", err)
	}

	return a, nil
}

// GetActive implements assignment.AssignmentRepository.
func (r *assignmentRepository) GetActive(ctx context.Context, chatterID, creatorID string) (*assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments a
		JOIN users u ON u.id = a.chatter_id
		JOIN creators c ON c.id = a.creator_id
		WHERE a.chatter_id = $1
		  AND a.creator_id = $2
		  AND a.unassigned_at IS NULL
		LIMIT 1
	`

	a, err := scanAssignment(q.QueryRow(ctx, query, chatterID, creatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active assignment: %w", err)
	}

	return &a, nil
}

// Create implements assignment.AssignmentRepository.
func (r *assignmentRepository) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO assignments (chatter_id, creator_id, is_primary, assigned_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, assigned_at
	`

	err := q.QueryRow(ctx, query, a.ChatterID, a.CreatorID, a.IsPrimary).
		Scan(&a.ID, &a.AssignedAt)
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return a, nil
}

// SetPrimary implements assignment.AssignmentRepository.
func (r *assignmentRepository) SetPrimary(ctx context.Context, id string, isPrimary bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE assignments
		SET is_primary = $2
		WHERE id = $1 AND unassigned_at IS NULL
		RETURNING id
	`

	var got string
	if err := q.QueryRow(ctx, query, id, isPrimary).Scan(&got); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to set primary assignment: %w", err)
	}

	return nil
}

// ClearPrimaryForChatter implements assignment.AssignmentRepository.
func (r *assignmentRepository) ClearPrimaryForChatter(ctx context.Context, chatterID string, exceptID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE assignments
		SET is_primary = FALSE
		WHERE chatter_id = $1
		  AND unassigned_at IS NULL
		  AND id <> $2
	`

	if _, err := q.Exec(ctx, query, chatterID, exceptID); err != nil {
		return fmt.Errorf("failed to clear primary assignments: %w", err)
	}

	return nil
}

// Unassign implements assignment.AssignmentRepository.
func (r *assignmentRepository) Unassign(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE assignments
		SET unassigned_at = NOW(), is_primary = FALSE
		WHERE id = $1 AND unassigned_at IS NULL
		RETURNING id
	`

	var got string
	if err := q.QueryRow(ctx, query, id).Scan(&got); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to unassign: %w", err)
	}

	return nil
}

// List implements assignment.AssignmentRepository.
func (r *assignmentRepository) List(ctx context.Context, activeOnly bool) ([]assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments a
		JOIN users u ON u.id = a.chatter_id
		JOIN creators c ON c.id = a.creator_id
	`
	if activeOnly {
		query += " WHERE a.unassigned_at IS NULL"
	}
	query += " ORDER BY a.assigned_at DESC"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := []assignment.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}

// ActiveCreatorIDs implements assignment.AssignmentRepository.
func (r *assignmentRepository) ActiveCreatorIDs(ctx context.Context, chatterID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT creator_id
		FROM assignments
		WHERE chatter_id = $1 AND unassigned_at IS NULL
	`

	rows, err := q.Query(ctx, query, chatterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active creator ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan creator id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate creator ids: %w", err)
	}

	return ids, nil
}

// ActiveCreatorIDsByChatter implements assignment.AssignmentRepository.
func (r *assignmentRepository) ActiveCreatorIDsByChatter(ctx context.Context) (map[string][]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT chatter_id, creator_id
		FROM assignments
		WHERE unassigned_at IS NULL
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active assignments: %w", err)
	}
	defer rows.Close()

	result := map[string][]string{}
	for rows.Next() {
		var chatterID, creatorID string
		if err := rows.Scan(&chatterID, &creatorID); err != nil {
			return nil, fmt.Errorf("failed to scan active assignment: %w", err)
		}
		result[chatterID] = append(result[chatterID], creatorID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate active assignments: %w", err)
	}

	return result, nil
}

func NewAssignmentRepository(db *database.DB) assignment.AssignmentRepository {
	return &assignmentRepository{db: db}
}
