package bonus

import (
	"math"
	"time"
)

type RuleType string

const (
	TypePercentage RuleType = "percentage"
	TypeFlat       RuleType = "flat"
	TypeMilestone  RuleType = "milestone"
)

type TargetType string

const (
	TargetRevenue      TargetType = "revenue"
	TargetNetRevenue   TargetType = "net_revenue"
	TargetMessagesSent TargetType = "messages_sent"
	TargetNewSubs      TargetType = "new_subs"
	TargetTips         TargetType = "tips"
	TargetManual       TargetType = "manual"
)

// Rule is a configured bonus rule. Numeric fields are pointers because
// each rule type only uses a subset of them.
type Rule struct {
	ID              string
	Name            string
	Description     *string
	Type            RuleType
	TargetType      TargetType
	ThresholdCents  *int64
	TargetThreshold *int64
	PercentageBps   *int64
	FlatAmountCents *int64
	Multiplier      *float64
	CreatorID       *string
	StartDate       *time.Time
	EndDate         *time.Time
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveThreshold resolves the two threshold aliases:
// target_threshold wins over threshold_cents, missing both means zero.
func (r Rule) EffectiveThreshold() int64 {
	if r.TargetThreshold != nil {
		return *r.TargetThreshold
	}
	if r.ThresholdCents != nil {
		return *r.ThresholdCents
	}
	return 0
}

// EffectiveMultiplier returns the rule multiplier, defaulting to 1 when
// unset or non-finite.
func (r Rule) EffectiveMultiplier() float64 {
	if r.Multiplier == nil {
		return 1
	}
	m := *r.Multiplier
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 1
	}
	return m
}
