package dashboard

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/domain/auth"
	"github.com/agencydesk/crm-backend-go/internal/domain/dashboard"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
)

type dashboardService struct {
	statsRepo dashboard.StatsRepository
}

// GetStats implements dashboard.StatsService.
func (s *dashboardService) GetStats(ctx context.Context) (dashboard.Stats, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return dashboard.Stats{}, err
	}

	switch principal.Role {
	case user.RoleAdmin:
		return s.statsRepo.AgencyStats(ctx)
	case user.RoleSupervisor:
		return s.statsRepo.TeamStats(ctx, principal.UserID)
	default:
		return s.statsRepo.ChatterStats(ctx, principal.UserID)
	}
}

var analyticsHeader = []string{"date", "revenue_usd", "tips_usd", "hours_worked"}

// ExportAnalyticsCSV implements dashboard.StatsService. The window is the
// trailing fourteen days including today, in UTC.
func (s *dashboardService) ExportAnalyticsCSV(ctx context.Context) ([]byte, string, error) {
	now := time.Now().UTC()
	end := now.Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -13)

	activity, err := s.statsRepo.DailyActivity(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(analyticsHeader); err != nil {
		return nil, "", err
	}
	for _, a := range activity {
		row := []string{
			a.Day.Format("2006-01-02"),
			fmt.Sprintf("%.2f", float64(a.RevenueCents)/100),
			fmt.Sprintf("%.2f", float64(a.TipsReceivedCents)/100),
			fmt.Sprintf("%.2f", float64(a.MinutesWorked)/60),
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("analytics-14d-%s.csv", now.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func NewDashboardService(statsRepo dashboard.StatsRepository) dashboard.StatsService {
	return &dashboardService{statsRepo: statsRepo}
}
