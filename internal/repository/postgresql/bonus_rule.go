package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/agencydesk/crm-backend-go/internal/domain/bonus"
	"github.com/agencydesk/crm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type bonusRuleRepository struct {
	db *database.DB
}

const ruleColumns = `
	id, name, description, type, target_type,
	threshold_cents, target_threshold, percentage_bps, flat_amount_cents,
	multiplier, creator_id, start_date, end_date, is_active,
	created_at, updated_at
`

func scanRule(row pgx.Row) (bonus.Rule, error) {
	var r bonus.Rule
	err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.Type, &r.TargetType,
		&r.ThresholdCents, &r.TargetThreshold, &r.PercentageBps, &r.FlatAmountCents,
		&r.Multiplier, &r.CreatorID, &r.StartDate, &r.EndDate, &r.IsActive,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Create implements bonus.RuleRepository.
func (b *bonusRuleRepository) Create(ctx context.Context, rule bonus.Rule) (bonus.Rule, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		INSERT INTO bonus_rules (
			name, description, type, target_type,
			threshold_cents, target_threshold, percentage_bps, flat_amount_cents,
			multiplier, creator_id, start_date, end_date, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rule.Name, rule.Description, rule.Type, rule.TargetType,
		rule.ThresholdCents, rule.TargetThreshold, rule.PercentageBps, rule.FlatAmountCents,
		rule.Multiplier, rule.CreatorID, rule.StartDate, rule.EndDate, rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return bonus.Rule{}, fmt.Errorf("failed to create bonus rule: %w", err)
	}

	return rule, nil
}

// GetByID implements bonus.RuleRepository.
func (b *bonusRuleRepository) GetByID(ctx context.Context, id string) (bonus.Rule, error) {
	q := GetQuerier(ctx, b.db)

	query := `SELECT ` + ruleColumns + ` FROM bonus_rules WHERE id = $1`

	rule, err := scanRule(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bonus.Rule{}, bonus.ErrRuleNotFound
		}
		return bonus.Rule{}, fmt.Errorf("failed to get bonus rule: %w", err)
	}

	return rule, nil
}

// Update implements bonus.RuleRepository.
func (b *bonusRuleRepository) Update(ctx context.Context, rule bonus.Rule) error {
	q := GetQuerier(ctx, b.db)

	query := `
		UPDATE bonus_rules
		SET name = $2,
			description = $3,
			type = $4,
			target_type = $5,
			threshold_cents = $6,
			target_threshold = $7,
			percentage_bps = $8,
			flat_amount_cents = $9,
			multiplier = $10,
			creator_id = $11,
			start_date = $12,
			end_date = $13,
			is_active = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		rule.ID, rule.Name, rule.Description, rule.Type, rule.TargetType,
		rule.ThresholdCents, rule.TargetThreshold, rule.PercentageBps, rule.FlatAmountCents,
		rule.Multiplier, rule.CreatorID, rule.StartDate, rule.EndDate, rule.IsActive,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bonus.ErrRuleNotFound
		}
		return fmt.Errorf("failed to update bonus rule: %w", err)
	}

	return nil
}

// Delete implements bonus.RuleRepository.
func (b *bonusRuleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, b.db)

	tag, err := q.Exec(ctx, "DELETE FROM bonus_rules WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete bonus rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return bonus.ErrRuleNotFound
	}

	return nil
}

// List implements bonus.RuleRepository.
func (b *bonusRuleRepository) List(ctx context.Context) ([]bonus.Rule, error) {
	return b.list(ctx, `SELECT `+ruleColumns+` FROM bonus_rules ORDER BY created_at`)
}

// ListActive implements bonus.RuleRepository.
func (b *bonusRuleRepository) ListActive(ctx context.Context) ([]bonus.Rule, error) {
	return b.list(ctx, `SELECT `+ruleColumns+` FROM bonus_rules WHERE is_active ORDER BY created_at`)
}

func (b *bonusRuleRepository) list(ctx context.Context, query string) ([]bonus.Rule, error) {
	q := GetQuerier(ctx, b.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus rules: %w", err)
	}
	defer rows.Close()

	rules := []bonus.Rule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bonus rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bonus rules: %w", err)
	}

	return rules, nil
}

func NewBonusRuleRepository(db *database.DB) bonus.RuleRepository {
	return &bonusRuleRepository{db: db}
}
