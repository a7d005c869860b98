package dashboard

import (
	"context"
	"time"
)

type StatsRepository interface {
	// AgencyStats counts across the whole agency.
	AgencyStats(ctx context.Context) (Stats, error)

	// TeamStats counts scoped to one supervisor's chatters.
	TeamStats(ctx context.Context, supervisorID string) (Stats, error)

	// ChatterStats counts scoped to one chatter.
	ChatterStats(ctx context.Context, chatterID string) (Stats, error)

	// DailyActivity returns one row per day in [start, end], zeros for
	// days with no activity.
	DailyActivity(ctx context.Context, start, end time.Time) ([]DailyActivity, error)
}

type StatsService interface {
	GetStats(ctx context.Context) (Stats, error)

	// ExportAnalyticsCSV renders the trailing fourteen days of agency
	// activity as a downloadable CSV.
	ExportAnalyticsCSV(ctx context.Context) ([]byte, string, error)
}
