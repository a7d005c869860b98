package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/domain/dashboard"
	"github.com/agencydesk/crm-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

// AgencyStats implements dashboard.StatsRepository.
func (r *dashboardRepository) AgencyStats(ctx context.Context) (dashboard.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'chatter' AND status = 'active'),
			(SELECT COUNT(*) FROM creators WHERE status = 'active'),
			(SELECT COUNT(*) FROM shifts WHERE clock_out IS NULL),
			(SELECT COUNT(*) FROM shifts WHERE clock_out IS NOT NULL AND approved_at IS NULL),
			(SELECT COUNT(*) FROM payrolls WHERE status = 'draft'),
			(SELECT COUNT(*) FROM bonus_rules WHERE is_active)
	`

	var s dashboard.Stats
	err := q.QueryRow(ctx, query).Scan(
		&s.ActiveChatters, &s.ActiveCreators, &s.OpenShifts,
		&s.PendingShifts, &s.DraftPayrolls, &s.ActiveBonusRules,
	)
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to get agency stats: %w", err)
	}

	return s, nil
}

// TeamStats implements dashboard.StatsRepository.
func (r *dashboardRepository) TeamStats(ctx context.Context, supervisorID string) (dashboard.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'chatter' AND status = 'active' AND supervisor_id = $1),
			(SELECT COUNT(*) FROM creators WHERE status = 'active'),
			(SELECT COUNT(*) FROM shifts s JOIN users u ON u.id = s.chatter_id
			 WHERE s.clock_out IS NULL AND u.supervisor_id = $1),
			(SELECT COUNT(*) FROM shifts s JOIN users u ON u.id = s.chatter_id
			 WHERE s.clock_out IS NOT NULL AND s.approved_at IS NULL AND u.supervisor_id = $1),
			(SELECT COUNT(*) FROM payrolls p JOIN users u ON u.id = p.chatter_id
			 WHERE p.status = 'draft' AND u.supervisor_id = $1),
			(SELECT COUNT(*) FROM bonus_rules WHERE is_active)
	`

	var s dashboard.Stats
	err := q.QueryRow(ctx, query, supervisorID).Scan(
		&s.ActiveChatters, &s.ActiveCreators, &s.OpenShifts,
		&s.PendingShifts, &s.DraftPayrolls, &s.ActiveBonusRules,
	)
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to get team stats: %w", err)
	}

	return s, nil
}

// ChatterStats implements dashboard.StatsRepository.
func (r *dashboardRepository) ChatterStats(ctx context.Context, chatterID string) (dashboard.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			1,
			(SELECT COUNT(*) FROM assignments WHERE chatter_id = $1 AND unassigned_at IS NULL),
			(SELECT COUNT(*) FROM shifts WHERE chatter_id = $1 AND clock_out IS NULL),
			(SELECT COUNT(*) FROM shifts WHERE chatter_id = $1 AND clock_out IS NOT NULL AND approved_at IS NULL),
			(SELECT COUNT(*) FROM payrolls WHERE chatter_id = $1 AND status = 'draft'),
			(SELECT COUNT(*) FROM bonus_rules WHERE is_active)
	`

	var s dashboard.Stats
	err := q.QueryRow(ctx, query, chatterID).Scan(
		&s.ActiveChatters, &s.ActiveCreators, &s.OpenShifts,
		&s.PendingShifts, &s.DraftPayrolls, &s.ActiveBonusRules,
	)
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to get chatter stats: %w", err)
	}

	return s, nil
}

// DailyActivity implements dashboard.StatsRepository.
func (r *dashboardRepository) DailyActivity(ctx context.Context, start, end time.Time) ([]dashboard.DailyActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH days AS (
			SELECT generate_series($1::date, $2::date, '1 day')::date AS day
		),
		kpi AS (
			SELECT snapshot_date::date AS day,
				   COALESCE(SUM(revenue_cents), 0) AS revenue_cents,
				   COALESCE(SUM(tips_received_cents), 0) AS tips_cents
			FROM kpi_snapshots
			WHERE snapshot_date >= $1::date AND snapshot_date <= $2::date
			GROUP BY 1
		),
		worked AS (
			SELECT clock_in::date AS day,
				   SUM(GREATEST(0,
					   FLOOR(EXTRACT(EPOCH FROM (clock_out - clock_in)) / 60)::bigint - break_minutes
				   )) AS minutes
			FROM shifts
			WHERE clock_in >= $1::date AND clock_out IS NOT NULL
			GROUP BY 1
		)
		SELECT d.day,
			   COALESCE(k.revenue_cents, 0),
			   COALESCE(k.tips_cents, 0),
			   COALESCE(w.minutes, 0)
		FROM days d
		LEFT JOIN kpi k ON k.day = d.day
		LEFT JOIN worked w ON w.day = d.day
		ORDER BY d.day
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily activity: %w", err)
	}
	defer rows.Close()

	activity := []dashboard.DailyActivity{}
	for rows.Next() {
		var a dashboard.DailyActivity
		if err := rows.Scan(&a.Day, &a.RevenueCents, &a.TipsReceivedCents, &a.MinutesWorked); err != nil {
			return nil, fmt.Errorf("failed to scan daily activity: %w", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily activity: %w", err)
	}

	return activity, nil
}

func NewDashboardRepository(db *database.DB) dashboard.StatsRepository {
	return &dashboardRepository{db: db}
}
