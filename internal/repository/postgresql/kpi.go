package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/domain/kpi"
	"github.com/agencydesk/crm-backend-go/internal/pkg/database"
)

type kpiRepository struct {
	db *database.DB
}

// Create implements kpi.SnapshotRepository.
func (r *kpiRepository) Create(ctx context.Context, s kpi.Snapshot) (kpi.Snapshot, error) {
	q := GetQuerier(ctx, r.db)

	// Re-entering a day's numbers corrects the existing row.
	query := `
		INSERT INTO kpi_snapshots (
			chatter_id, creator_id, snapshot_date,
			revenue_cents, messages_sent, new_subs, tips_received_cents, source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (chatter_id, creator_id, snapshot_date) DO UPDATE SET
			revenue_cents = EXCLUDED.revenue_cents,
			messages_sent = EXCLUDED.messages_sent,
			new_subs = EXCLUDED.new_subs,
			tips_received_cents = EXCLUDED.tips_received_cents,
			source = EXCLUDED.source
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		s.ChatterID, s.CreatorID, s.SnapshotDate,
		s.RevenueCents, s.MessagesSent, s.NewSubs, s.TipsReceivedCents, s.Source,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return kpi.Snapshot{}, fmt.Errorf("failed to create kpi snapshot: %w", err)
	}

	return s, nil
}

// List implements kpi.SnapshotRepository.
func (r *kpiRepository) List(ctx context.Context, filter kpi.SnapshotFilter) ([]kpi.Snapshot, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.ChatterID != nil {
		conditions = append(conditions, fmt.Sprintf("k.chatter_id = $%d", argIdx))
		args = append(args, *filter.ChatterID)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("k.snapshot_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("k.snapshot_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	query := `
		SELECT k.id, k.chatter_id, k.creator_id, k.snapshot_date,
			   k.revenue_cents, k.messages_sent, k.new_subs, k.tips_received_cents,
			   k.source, k.created_at,
			   u.name AS chatter_name, c.display_name AS creator_display_name
		FROM kpi_snapshots k
		JOIN users u ON u.id = k.chatter_id
		JOIN creators c ON c.id = k.creator_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY k.snapshot_date DESC, k.created_at DESC
	`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []kpi.Snapshot{}
	for rows.Next() {
		var s kpi.Snapshot
		err := rows.Scan(
			&s.ID, &s.ChatterID, &s.CreatorID, &s.SnapshotDate,
			&s.RevenueCents, &s.MessagesSent, &s.NewSubs, &s.TipsReceivedCents,
			&s.Source, &s.CreatedAt,
			&s.ChatterName, &s.CreatorDisplayName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kpi snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kpi snapshots: %w", err)
	}

	return snapshots, nil
}

// SumByChatter implements kpi.SnapshotRepository.
func (r *kpiRepository) SumByChatter(ctx context.Context, start, end time.Time) ([]kpi.PeriodSum, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT chatter_id,
			   COALESCE(SUM(revenue_cents), 0),
			   COALESCE(SUM(messages_sent), 0),
			   COALESCE(SUM(new_subs), 0),
			   COALESCE(SUM(tips_received_cents), 0)
		FROM kpi_snapshots
		WHERE snapshot_date >= $1 AND snapshot_date <= $2
		GROUP BY chatter_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum kpi snapshots: %w", err)
	}
	defer rows.Close()

	sums := []kpi.PeriodSum{}
	for rows.Next() {
		var s kpi.PeriodSum
		if err := rows.Scan(&s.ChatterID, &s.RevenueCents, &s.MessagesSent, &s.NewSubs, &s.TipsReceivedCents); err != nil {
			return nil, fmt.Errorf("failed to scan kpi sum: %w", err)
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kpi sums: %w", err)
	}

	return sums, nil
}

// SumForChatter implements kpi.SnapshotRepository.
func (r *kpiRepository) SumForChatter(ctx context.Context, chatterID string, start, end time.Time) (kpi.PeriodSum, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(revenue_cents), 0),
			   COALESCE(SUM(messages_sent), 0),
			   COALESCE(SUM(new_subs), 0),
			   COALESCE(SUM(tips_received_cents), 0)
		FROM kpi_snapshots
		WHERE chatter_id = $1
		  AND snapshot_date >= $2
		  AND snapshot_date <= $3
	`

	s := kpi.PeriodSum{ChatterID: chatterID}
	err := q.QueryRow(ctx, query, chatterID, start, end).
		Scan(&s.RevenueCents, &s.MessagesSent, &s.NewSubs, &s.TipsReceivedCents)
	if err != nil {
		return kpi.PeriodSum{}, fmt.Errorf("failed to sum kpi snapshots for chatter: %w", err)
	}

	return s, nil
}

func NewKPIRepository(db *database.DB) kpi.SnapshotRepository {
	return &kpiRepository{db: db}
}
