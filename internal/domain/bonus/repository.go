package bonus

import "context"

type RuleRepository interface {
	Create(ctx context.Context, rule Rule) (Rule, error)
	GetByID(ctx context.Context, id string) (Rule, error)
	Update(ctx context.Context, rule Rule) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Rule, error)

	// ListActive returns active rules in creation order, the evaluation
	// input for payroll bonus application.
	ListActive(ctx context.Context) ([]Rule, error)
}

// RuleService defines business logic for bonus rule management
type RuleService interface {
	CreateRule(ctx context.Context, req CreateRuleRequest) (RuleResponse, error)
	GetRule(ctx context.Context, id string) (RuleResponse, error)
	UpdateRule(ctx context.Context, id string, req UpdateRuleRequest) (RuleResponse, error)
	DeleteRule(ctx context.Context, id string) error
	ListRules(ctx context.Context) ([]RuleResponse, error)

	// Preview dry-runs a rule against all chatters over a date range.
	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
}
