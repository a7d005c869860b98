package dashboard

import "time"

// Stats is the role-scoped overview for the dashboard landing page.
// Admins see agency-wide numbers, supervisors their team, chatters
// themselves.
type Stats struct {
	ActiveChatters   int64 `json:"active_chatters"`
	ActiveCreators   int64 `json:"active_creators"`
	OpenShifts       int64 `json:"open_shifts"`
	PendingShifts    int64 `json:"pending_shifts"`
	DraftPayrolls    int64 `json:"draft_payrolls"`
	ActiveBonusRules int64 `json:"active_bonus_rules"`
}

// DailyActivity is one day's agency-wide totals: KPI revenue and tips
// plus worked minutes from closed shifts.
type DailyActivity struct {
	Day               time.Time
	RevenueCents      int64
	TipsReceivedCents int64
	MinutesWorked     int64
}
