package bonus

import (
	"fmt"
	"strconv"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/pkg/money"
)

// EvalContext carries one chatter's aggregated performance for a pay
// period. Gross sales are raw snapshot revenue; net sales are derived
// here after the agency fee.
type EvalContext struct {
	ChatterID        string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	GrossSalesCents  int64
	MessagesSent     int64
	NewSubs          int64
	TipsCents        int64
	ActiveCreatorIDs []string
}

// EvaluatedBonus is one awarded bonus line. RuleID links it back to the
// rule that produced it so re-evaluation can replace it.
type EvaluatedBonus struct {
	RuleID      string
	RuleName    string
	Description string
	AmountCents int64
}

// Evaluate runs every rule against the context and returns the bonuses
// that qualified, in rule order. It is pure: same inputs, same output.
func Evaluate(ctx EvalContext, rules []Rule) []EvaluatedBonus {
	var out []EvaluatedBonus
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if !inWindow(rule, ctx.PeriodEnd) {
			continue
		}
		if rule.CreatorID != nil && !containsID(ctx.ActiveCreatorIDs, *rule.CreatorID) {
			continue
		}
		if rule.TargetType == TargetManual {
			continue
		}

		metric := metricValue(ctx, rule.TargetType)
		if metric < rule.EffectiveThreshold() {
			continue
		}

		base := baseAmount(rule, metric)
		amount := money.MulRound(base, rule.EffectiveMultiplier())
		if amount <= 0 {
			continue
		}

		out = append(out, EvaluatedBonus{
			RuleID:      rule.ID,
			RuleName:    rule.Name,
			Description: describe(rule),
			AmountCents: amount,
		})
	}
	return out
}

// inWindow checks the rule's date window against the period end date.
// A period ending before the rule starts, or after it ends, never pays.
func inWindow(rule Rule, periodEnd time.Time) bool {
	if rule.StartDate != nil && periodEnd.Before(*rule.StartDate) {
		return false
	}
	if rule.EndDate != nil && periodEnd.After(*rule.EndDate) {
		return false
	}
	return true
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func metricValue(ctx EvalContext, target TargetType) int64 {
	switch target {
	case TargetRevenue:
		return ctx.GrossSalesCents
	case TargetNetRevenue:
		return money.NetSalesCents(ctx.GrossSalesCents)
	case TargetMessagesSent:
		return ctx.MessagesSent
	case TargetNewSubs:
		return ctx.NewSubs
	case TargetTips:
		return ctx.TipsCents
	default:
		return 0
	}
}

// baseAmount computes the pre-multiplier payout. A percentage rule with
// no percentage configured falls back to its flat amount.
func baseAmount(rule Rule, metric int64) int64 {
	switch rule.Type {
	case TypePercentage:
		if rule.PercentageBps != nil && *rule.PercentageBps != 0 {
			return money.ApplyBps(metric, *rule.PercentageBps)
		}
		return flatOrZero(rule)
	default:
		return flatOrZero(rule)
	}
}

func flatOrZero(rule Rule) int64 {
	if rule.FlatAmountCents != nil {
		return *rule.FlatAmountCents
	}
	return 0
}

var targetLabels = map[TargetType]string{
	TargetRevenue:      "gross sales",
	TargetNetRevenue:   "net sales",
	TargetMessagesSent: "messages",
	TargetNewSubs:      "new subs",
	TargetTips:         "tips",
}

func isMoneyTarget(target TargetType) bool {
	switch target {
	case TargetRevenue, TargetNetRevenue, TargetTips:
		return true
	}
	return false
}

// describe builds the human-readable bonus line shown on payslips.
func describe(rule Rule) string {
	label := targetLabels[rule.TargetType]

	switch rule.Type {
	case TypeMilestone:
		threshold := rule.EffectiveThreshold()
		if isMoneyTarget(rule.TargetType) {
			return fmt.Sprintf("%s: Hit $%d %s", rule.Name, money.WholeDollars(threshold), label)
		}
		return fmt.Sprintf("%s: Hit %d %s", rule.Name, threshold, label)
	case TypePercentage:
		var bps int64
		if rule.PercentageBps != nil {
			bps = *rule.PercentageBps
		}
		pct := strconv.FormatFloat(float64(bps)/100, 'f', -1, 64)
		return fmt.Sprintf("%s: %s%% of %s", rule.Name, pct, label)
	default:
		return rule.Name
	}
}
