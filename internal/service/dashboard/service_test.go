package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/domain/dashboard"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsRepo struct {
	agency  dashboard.Stats
	team    dashboard.Stats
	chatter dashboard.Stats

	activity      []dashboard.DailyActivity
	gotStart      time.Time
	gotEnd        time.Time
	lastScopeID   string
	lastScopeKind string
}

func (f *fakeStatsRepo) AgencyStats(_ context.Context) (dashboard.Stats, error) {
	f.lastScopeKind = "agency"
	return f.agency, nil
}

func (f *fakeStatsRepo) TeamStats(_ context.Context, supervisorID string) (dashboard.Stats, error) {
	f.lastScopeKind = "team"
	f.lastScopeID = supervisorID
	return f.team, nil
}

func (f *fakeStatsRepo) ChatterStats(_ context.Context, chatterID string) (dashboard.Stats, error) {
	f.lastScopeKind = "chatter"
	f.lastScopeID = chatterID
	return f.chatter, nil
}

func (f *fakeStatsRepo) DailyActivity(_ context.Context, start, end time.Time) ([]dashboard.DailyActivity, error) {
	f.gotStart = start
	f.gotEnd = end
	return f.activity, nil
}

func ctxWithRole(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	ta := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ta.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   userID + "@example.com",
		"role":    string(role),
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestGetStats_ScopesByRole(t *testing.T) {
	repo := &fakeStatsRepo{
		agency:  dashboard.Stats{ActiveChatters: 10},
		team:    dashboard.Stats{ActiveChatters: 3},
		chatter: dashboard.Stats{OpenShifts: 1},
	}
	svc := NewDashboardService(repo)

	stats, err := svc.GetStats(ctxWithRole(t, "admin-1", user.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.ActiveChatters)
	assert.Equal(t, "agency", repo.lastScopeKind)

	stats, err = svc.GetStats(ctxWithRole(t, "supervisor-1", user.RoleSupervisor))
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.ActiveChatters)
	assert.Equal(t, "supervisor-1", repo.lastScopeID)

	stats, err = svc.GetStats(ctxWithRole(t, "chatter-1", user.RoleChatter))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.OpenShifts)
	assert.Equal(t, "chatter-1", repo.lastScopeID)
}

func TestExportAnalyticsCSV(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeStatsRepo{
		activity: []dashboard.DailyActivity{
			{Day: day, RevenueCents: 123456, TipsReceivedCents: 500, MinutesWorked: 90},
			{Day: day.AddDate(0, 0, 1)},
		},
	}
	svc := NewDashboardService(repo)

	data, filename, err := svc.ExportAnalyticsCSV(context.Background())
	require.NoError(t, err)

	// Trailing fourteen days including today, midnight-aligned UTC.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	assert.Equal(t, today, repo.gotEnd)
	assert.Equal(t, today.AddDate(0, 0, -13), repo.gotStart)
	assert.Equal(t, "analytics-14d-"+time.Now().UTC().Format("2006-01-02")+".csv", filename)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,revenue_usd,tips_usd,hours_worked", lines[0])
	assert.Equal(t, "2025-03-10,1234.56,5.00,1.50", lines[1])
	assert.Equal(t, "2025-03-11,0.00,0.00,0.00", lines[2])
}
