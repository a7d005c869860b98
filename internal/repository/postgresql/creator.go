package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agencydesk/crm-backend-go/internal/domain/creator"
	"github.com/agencydesk/crm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type creatorRepository struct {
	db *database.DB
}

// Create implements creator.CreatorRepository.
func (r *creatorRepository) Create(ctx context.Context, c creator.Creator) (creator.Creator, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO creators (platform, username, display_name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, c.Platform, c.Username, c.DisplayName, c.Status).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return creator.Creator{}, creator.ErrCreatorExists
		}
		return creator.Creator{}, fmt.Errorf("failed to create creator: %w", err)
	}

	return c, nil
}

// GetByID implements creator.CreatorRepository.
func (r *creatorRepository) GetByID(ctx context.Context, id string) (creator.Creator, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, platform, username, display_name, status, created_at, updated_at
		FROM creators
		WHERE id = $1
	`

	var c creator.Creator
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Platform, &c.Username, &c.DisplayName, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return creator.Creator{}, creator.ErrCreatorNotFound
		}
		return creator.Creator{}, fmt.Errorf("failed to get creator: %w", err)
	}

	return c, nil
}

// Update implements creator.CreatorRepository.
func (r *creatorRepository) Update(ctx context.Context, req creator.UpdateCreatorRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	if req.DisplayName != nil {
		updates = append(updates, fmt.Sprintf("display_name = $%d", argIdx))
		args = append(args, *req.DisplayName)
		argIdx++
	}
	if req.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *req.Status)
		argIdx++
	}

	sql := "UPDATE creators SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)
	args = append(args, req.ID)

	var id string
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return creator.ErrCreatorNotFound
		}
		return fmt.Errorf("failed to update creator: %w", err)
	}

	return nil
}

// List implements creator.CreatorRepository.
func (r *creatorRepository) List(ctx context.Context) ([]creator.Creator, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, platform, username, display_name, status, created_at, updated_at
		FROM creators
		ORDER BY display_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list creators: %w", err)
	}
	defer rows.Close()

	creators := []creator.Creator{}
	for rows.Next() {
		var c creator.Creator
		if err := rows.Scan(&c.ID, &c.Platform, &c.Username, &c.DisplayName, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan creator: %w", err)
		}
		creators = append(creators, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate creators: %w", err)
	}

	return creators, nil
}

func NewCreatorRepository(db *database.DB) creator.CreatorRepository {
	return &creatorRepository{db: db}
}
