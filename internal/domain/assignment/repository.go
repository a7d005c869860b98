package assignment

import "context"

type AssignmentRepository interface {
	GetByID(ctx context.Context, id string) (Assignment, error)

	// GetActive returns the active assignment for (chatter, creator), if any.
	GetActive(ctx context.Context, chatterID, creatorID string) (*Assignment, error)

	Create(ctx context.Context, a Assignment) (Assignment, error)
	SetPrimary(ctx context.Context, id string, isPrimary bool) error

	// ClearPrimaryForChatter clears the primary flag on all active
	// assignments for a chatter except the given one (empty string keeps
	// none).
	ClearPrimaryForChatter(ctx context.Context, chatterID string, exceptID string) error

	// Unassign soft-ends an assignment.
	Unassign(ctx context.Context, id string) error

	List(ctx context.Context, activeOnly bool) ([]Assignment, error)

	// ActiveCreatorIDs returns the creator IDs currently assigned to a
	// chatter, used for creator-scoped bonus rule matching.
	ActiveCreatorIDs(ctx context.Context, chatterID string) ([]string, error)

	// ActiveCreatorIDsByChatter returns current assignments for all
	// chatters at once, keyed by chatter ID.
	ActiveCreatorIDsByChatter(ctx context.Context) (map[string][]string, error)
}

// AssignmentService defines business logic for creator-chatter assignment
type AssignmentService interface {
	// Assign links a chatter to a creator. Re-assigning an already active
	// pair returns the existing assignment unchanged.
	Assign(ctx context.Context, req AssignRequest) (AssignmentResponse, error)

	// SetPrimary marks an assignment primary and demotes the chatter's
	// other active assignments.
	SetPrimary(ctx context.Context, req SetPrimaryRequest) (AssignmentResponse, error)

	Unassign(ctx context.Context, id string) error
	ListAssignments(ctx context.Context, activeOnly bool) ([]AssignmentResponse, error)
}
