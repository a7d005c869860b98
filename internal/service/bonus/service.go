package bonus

import (
	"context"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/domain/assignment"
	"github.com/agencydesk/crm-backend-go/internal/domain/bonus"
	"github.com/agencydesk/crm-backend-go/internal/domain/kpi"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
)

type bonusService struct {
	ruleRepo       bonus.RuleRepository
	userRepo       user.UserRepository
	kpiRepo        kpi.SnapshotRepository
	assignmentRepo assignment.AssignmentRepository
}

// CreateRule implements bonus.RuleService.
func (s *bonusService) CreateRule(ctx context.Context, req bonus.CreateRuleRequest) (bonus.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return bonus.RuleResponse{}, err
	}

	created, err := s.ruleRepo.Create(ctx, req.ToRule())
	if err != nil {
		return bonus.RuleResponse{}, err
	}

	return bonus.ToResponse(created), nil
}

// GetRule implements bonus.RuleService.
func (s *bonusService) GetRule(ctx context.Context, id string) (bonus.RuleResponse, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return bonus.RuleResponse{}, err
	}
	return bonus.ToResponse(rule), nil
}

// UpdateRule implements bonus.RuleService.
func (s *bonusService) UpdateRule(ctx context.Context, id string, req bonus.UpdateRuleRequest) (bonus.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return bonus.RuleResponse{}, err
	}

	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return bonus.RuleResponse{}, err
	}

	applyRuleUpdate(&rule, req)

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return bonus.RuleResponse{}, err
	}

	return s.GetRule(ctx, id)
}

// DeleteRule implements bonus.RuleService.
func (s *bonusService) DeleteRule(ctx context.Context, id string) error {
	return s.ruleRepo.Delete(ctx, id)
}

// ListRules implements bonus.RuleService.
func (s *bonusService) ListRules(ctx context.Context) ([]bonus.RuleResponse, error) {
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]bonus.RuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, bonus.ToResponse(rule))
	}
	return responses, nil
}

// Preview implements bonus.RuleService. It dry-runs the unsaved rule
// against every active chatter's KPIs in the range without touching
// payrolls.
func (s *bonusService) Preview(ctx context.Context, req bonus.PreviewRequest) (bonus.PreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return bonus.PreviewResponse{}, err
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -7)
	if req.StartDate != "" {
		start, _ = validator.ParseFlexibleTime(req.StartDate)
	}
	if req.EndDate != "" {
		end, _ = validator.ParseFlexibleTime(req.EndDate)
	}

	rule := req.Rule.ToRule()
	rule.ID = "preview"

	chatters, err := s.userRepo.ListByRole(ctx, user.RoleChatter)
	if err != nil {
		return bonus.PreviewResponse{}, err
	}

	sums, err := s.kpiRepo.SumByChatter(ctx, start, end)
	if err != nil {
		return bonus.PreviewResponse{}, err
	}
	sumsByChatter := make(map[string]kpi.PeriodSum, len(sums))
	for _, sum := range sums {
		sumsByChatter[sum.ChatterID] = sum
	}

	creatorIDs, err := s.assignmentRepo.ActiveCreatorIDsByChatter(ctx)
	if err != nil {
		return bonus.PreviewResponse{}, err
	}

	resp := bonus.PreviewResponse{Lines: []bonus.PreviewLine{}}
	for _, chatter := range chatters {
		if chatter.Status != user.StatusActive {
			continue
		}

		sum := sumsByChatter[chatter.ID]
		evaluated := bonus.Evaluate(bonus.EvalContext{
			ChatterID:        chatter.ID,
			PeriodStart:      start,
			PeriodEnd:        end,
			GrossSalesCents:  sum.RevenueCents,
			MessagesSent:     sum.MessagesSent,
			NewSubs:          sum.NewSubs,
			TipsCents:        sum.TipsReceivedCents,
			ActiveCreatorIDs: creatorIDs[chatter.ID],
		}, []bonus.Rule{rule})

		line := bonus.PreviewLine{
			ChatterID:   chatter.ID,
			ChatterName: chatter.Name,
		}
		if len(evaluated) > 0 {
			line.Qualifies = true
			line.AmountCents = evaluated[0].AmountCents
			line.Description = evaluated[0].Description
			resp.TotalPayoutCents += evaluated[0].AmountCents
			resp.QualifiedCount++
		}
		resp.Lines = append(resp.Lines, line)
	}

	return resp, nil
}

func applyRuleUpdate(rule *bonus.Rule, req bonus.UpdateRuleRequest) {
	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Description != nil {
		rule.Description = req.Description
	}
	if req.Type != nil {
		rule.Type = bonus.RuleType(*req.Type)
	}
	if req.TargetType != nil {
		rule.TargetType = bonus.TargetType(*req.TargetType)
	}
	if req.ThresholdCents != nil {
		rule.ThresholdCents = req.ThresholdCents
	}
	if req.TargetThreshold != nil {
		rule.TargetThreshold = req.TargetThreshold
	}
	if req.PercentageBps != nil {
		rule.PercentageBps = req.PercentageBps
	}
	if req.FlatAmountCents != nil {
		rule.FlatAmountCents = req.FlatAmountCents
	}
	if req.Multiplier != nil {
		rule.Multiplier = req.Multiplier
	}
	if req.CreatorID != nil {
		rule.CreatorID = req.CreatorID
	}
	if req.StartDate != nil {
		if t, ok := validator.ParseFlexibleTime(*req.StartDate); ok {
			rule.StartDate = &t
		}
	}
	if req.EndDate != nil {
		if t, ok := validator.ParseFlexibleTime(*req.EndDate); ok {
			rule.EndDate = &t
		}
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
}

func NewBonusService(
	ruleRepo bonus.RuleRepository,
	userRepo user.UserRepository,
	kpiRepo kpi.SnapshotRepository,
	assignmentRepo assignment.AssignmentRepository,
) bonus.RuleService {
	return &bonusService{
		ruleRepo:       ruleRepo,
		userRepo:       userRepo,
		kpiRepo:        kpiRepo,
		assignmentRepo: assignmentRepo,
	}
}
