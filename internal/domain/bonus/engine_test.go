package bonus

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrI64(v int64) *int64 { return &v }

func ptrF64(v float64) *float64 { return &v }

func ptrStr(v string) *string { return &v }

func baseCtx() EvalContext {
	return EvalContext{
		ChatterID:       "chatter-1",
		PeriodStart:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:       time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
		GrossSalesCents: 500000,
	}
}

func TestEvaluate_MilestoneThresholdBoundary(t *testing.T) {
	rule := Rule{
		ID:              "r1",
		Name:            "Weekly Crusher",
		Type:            TypeMilestone,
		TargetType:      TargetRevenue,
		TargetThreshold: ptrI64(500000),
		FlatAmountCents: ptrI64(10000),
		IsActive:        true,
	}

	ctx := baseCtx()
	ctx.GrossSalesCents = 499999
	assert.Empty(t, Evaluate(ctx, []Rule{rule}))

	ctx.GrossSalesCents = 500000
	got := Evaluate(ctx, []Rule{rule})
	require.Len(t, got, 1)
	assert.Equal(t, int64(10000), got[0].AmountCents)
	assert.Equal(t, "Weekly Crusher: Hit $5000 gross sales", got[0].Description)
}

func TestEvaluate_PercentageRounding(t *testing.T) {
	rule := Rule{
		ID:            "r1",
		Name:          "Sales Cut",
		Type:          TypePercentage,
		TargetType:    TargetRevenue,
		PercentageBps: ptrI64(250),
		IsActive:      true,
	}

	ctx := baseCtx()
	ctx.GrossSalesCents = 333

	got := Evaluate(ctx, []Rule{rule})
	require.Len(t, got, 1)
	// 333 * 2.5% = 8.325, rounds to 8
	assert.Equal(t, int64(8), got[0].AmountCents)
	assert.Equal(t, "Sales Cut: 2.5% of gross sales", got[0].Description)
}

func TestEvaluate_MultiplierAppliesAfterBase(t *testing.T) {
	rule := Rule{
		ID:            "r1",
		Name:          "Double Week",
		Type:          TypePercentage,
		TargetType:    TargetRevenue,
		PercentageBps: ptrI64(250),
		Multiplier:    ptrF64(2.0),
		IsActive:      true,
	}

	ctx := baseCtx()
	ctx.GrossSalesCents = 333

	got := Evaluate(ctx, []Rule{rule})
	require.Len(t, got, 1)
	assert.Equal(t, int64(16), got[0].AmountCents)
}

func TestEvaluate_NetRevenueUsesAgencyFee(t *testing.T) {
	rule := Rule{
		ID:              "r1",
		Name:            "Net Milestone",
		Type:            TypeMilestone,
		TargetType:      TargetNetRevenue,
		TargetThreshold: ptrI64(400000),
		FlatAmountCents: ptrI64(5000),
		IsActive:        true,
	}

	// 500000 gross nets to 400000 at the 20% agency fee, exactly on threshold.
	got := Evaluate(baseCtx(), []Rule{rule})
	require.Len(t, got, 1)
	assert.Equal(t, "Net Milestone: Hit $4000 net sales", got[0].Description)

	ctx := baseCtx()
	ctx.GrossSalesCents = 499999
	assert.Empty(t, Evaluate(ctx, []Rule{rule}))
}

func TestEvaluate_DateWindowAnchorsOnPeriodEnd(t *testing.T) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	rule := Rule{
		ID:              "r1",
		Name:            "February Push",
		Type:            TypeFlat,
		TargetType:      TargetRevenue,
		FlatAmountCents: ptrI64(2500),
		StartDate:       &start,
		EndDate:         &end,
		IsActive:        true,
	}

	ctx := baseCtx()
	ctx.PeriodEnd = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, Evaluate(ctx, []Rule{rule}))

	ctx.PeriodEnd = time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	assert.Len(t, Evaluate(ctx, []Rule{rule}), 1)

	ctx.PeriodEnd = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, Evaluate(ctx, []Rule{rule}))
}

func TestEvaluate_CreatorScopeRequiresActiveAssignment(t *testing.T) {
	rule := Rule{
		ID:              "r1",
		Name:            "Creator Special",
		Type:            TypeFlat,
		TargetType:      TargetRevenue,
		FlatAmountCents: ptrI64(1000),
		CreatorID:       ptrStr("creator-9"),
		IsActive:        true,
	}

	ctx := baseCtx()
	assert.Empty(t, Evaluate(ctx, []Rule{rule}))

	ctx.ActiveCreatorIDs = []string{"creator-1", "creator-9"}
	assert.Len(t, Evaluate(ctx, []Rule{rule}), 1)
}

func TestEvaluate_ManualRulesNeverQualify(t *testing.T) {
	rule := Rule{
		ID:              "r1",
		Name:            "Discretionary",
		Type:            TypeFlat,
		TargetType:      TargetManual,
		FlatAmountCents: ptrI64(99900),
		IsActive:        true,
	}
	assert.Empty(t, Evaluate(baseCtx(), []Rule{rule}))
}

func TestEvaluate_InactiveRulesSkipped(t *testing.T) {
	rule := Rule{
		ID:              "r1",
		Name:            "Retired",
		Type:            TypeFlat,
		TargetType:      TargetRevenue,
		FlatAmountCents: ptrI64(1000),
		IsActive:        false,
	}
	assert.Empty(t, Evaluate(baseCtx(), []Rule{rule}))
}

func TestEvaluate_ThresholdAliasPrecedence(t *testing.T) {
	rule := Rule{
		ID:              "r1",
		Name:            "Aliased",
		Type:            TypeMilestone,
		TargetType:      TargetRevenue,
		ThresholdCents:  ptrI64(100),
		TargetThreshold: ptrI64(600000),
		FlatAmountCents: ptrI64(1000),
		IsActive:        true,
	}

	// target_threshold wins; 500000 gross misses 600000.
	assert.Empty(t, Evaluate(baseCtx(), []Rule{rule}))

	rule.TargetThreshold = nil
	assert.Len(t, Evaluate(baseCtx(), []Rule{rule}), 1)
}

func TestEvaluate_PercentageFallsBackToFlat(t *testing.T) {
	rule := Rule{
		ID:              "r1",
		Name:            "Misconfigured",
		Type:            TypePercentage,
		TargetType:      TargetRevenue,
		FlatAmountCents: ptrI64(4200),
		IsActive:        true,
	}

	got := Evaluate(baseCtx(), []Rule{rule})
	require.Len(t, got, 1)
	assert.Equal(t, int64(4200), got[0].AmountCents)
	// The description still reports the configured (zero) percentage.
	assert.Equal(t, "Misconfigured: 0% of gross sales", got[0].Description)
}

func TestEvaluate_ZeroAmountsSuppressed(t *testing.T) {
	rules := []Rule{
		{ID: "r1", Name: "Empty Flat", Type: TypeFlat, TargetType: TargetRevenue, IsActive: true},
		{ID: "r2", Name: "Zero Percent", Type: TypePercentage, TargetType: TargetRevenue, PercentageBps: ptrI64(0), IsActive: true},
	}
	assert.Empty(t, Evaluate(baseCtx(), rules))
}

func TestEvaluate_CountTargetDescription(t *testing.T) {
	ctx := baseCtx()
	ctx.NewSubs = 50
	rule := Rule{
		ID:              "r1",
		Name:            "Sub Drive",
		Type:            TypeMilestone,
		TargetType:      TargetNewSubs,
		TargetThreshold: ptrI64(50),
		FlatAmountCents: ptrI64(2000),
		IsActive:        true,
	}

	got := Evaluate(ctx, []Rule{rule})
	require.Len(t, got, 1)
	assert.Equal(t, "Sub Drive: Hit 50 new subs", got[0].Description)
}

func TestEvaluate_NonFiniteMultiplierDefaultsToOne(t *testing.T) {
	inf := math.Inf(1)
	rule := Rule{
		ID:              "r1",
		Name:            "Broken Multiplier",
		Type:            TypeFlat,
		TargetType:      TargetRevenue,
		FlatAmountCents: ptrI64(1000),
		Multiplier:      &inf,
		IsActive:        true,
	}

	got := Evaluate(baseCtx(), []Rule{rule})
	require.Len(t, got, 1)
	assert.Equal(t, int64(1000), got[0].AmountCents)
}

func TestEvaluate_PreservesRuleOrderAndIsDeterministic(t *testing.T) {
	rules := []Rule{
		{ID: "r1", Name: "First", Type: TypeFlat, TargetType: TargetRevenue, FlatAmountCents: ptrI64(100), IsActive: true},
		{ID: "r2", Name: "Second", Type: TypeFlat, TargetType: TargetRevenue, FlatAmountCents: ptrI64(200), IsActive: true},
		{ID: "r3", Name: "Third", Type: TypeFlat, TargetType: TargetRevenue, FlatAmountCents: ptrI64(300), IsActive: true},
	}

	first := Evaluate(baseCtx(), rules)
	require.Len(t, first, 3)
	assert.Equal(t, []string{"r1", "r2", "r3"}, []string{first[0].RuleID, first[1].RuleID, first[2].RuleID})

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(baseCtx(), rules))
	}
}
