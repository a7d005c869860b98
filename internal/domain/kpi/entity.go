package kpi

import "time"

type Source string

const (
	SourceManual Source = "manual"
	SourceImport Source = "import"
)

// Snapshot is one day's KPI numbers for a chatter on a creator account.
// Nil metric fields mean "not recorded", and sum as zero.
type Snapshot struct {
	ID                string
	ChatterID         string
	CreatorID         string
	SnapshotDate      time.Time
	RevenueCents      *int64
	MessagesSent      *int64
	NewSubs           *int64
	TipsReceivedCents *int64
	Source            Source
	CreatedAt         time.Time

	// Joined fields
	ChatterName        *string
	CreatorDisplayName *string
}

// PeriodSum is the per-chatter aggregate over a date range, the raw
// material for bonus evaluation and payroll generation.
type PeriodSum struct {
	ChatterID         string
	RevenueCents      int64
	MessagesSent      int64
	NewSubs           int64
	TipsReceivedCents int64
}
