package kpi

import (
	"context"
	"time"
)

type SnapshotRepository interface {
	Create(ctx context.Context, s Snapshot) (Snapshot, error)
	List(ctx context.Context, filter SnapshotFilter) ([]Snapshot, error)

	// SumByChatter aggregates snapshot metrics per chatter over
	// [start, end] inclusive.
	SumByChatter(ctx context.Context, start, end time.Time) ([]PeriodSum, error)

	// SumForChatter aggregates one chatter's metrics over [start, end].
	// A chatter with no snapshots sums to all zeros, not an error.
	SumForChatter(ctx context.Context, chatterID string, start, end time.Time) (PeriodSum, error)
}

// SnapshotService defines business logic for KPI snapshot entry
type SnapshotService interface {
	CreateSnapshot(ctx context.Context, req CreateSnapshotRequest) (SnapshotResponse, error)
	ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]SnapshotResponse, error)
}
