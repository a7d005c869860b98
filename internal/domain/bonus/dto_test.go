package bonus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRuleRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRuleRequest
		wantErr bool
	}{
		{
			name:    "valid flat rule",
			req:     CreateRuleRequest{Name: "Weekly Bonus", Type: "flat", TargetType: "revenue"},
			wantErr: false,
		},
		{
			name:    "missing name",
			req:     CreateRuleRequest{Type: "flat", TargetType: "revenue"},
			wantErr: true,
		},
		{
			name:    "bad type",
			req:     CreateRuleRequest{Name: "X", Type: "tiered", TargetType: "revenue"},
			wantErr: true,
		},
		{
			name:    "zero multiplier",
			req:     CreateRuleRequest{Name: "X", Type: "flat", TargetType: "revenue", Multiplier: ptrF64(0)},
			wantErr: true,
		},
		{
			name:    "bad start date",
			req:     CreateRuleRequest{Name: "X", Type: "flat", TargetType: "revenue", StartDate: ptrStr("not-a-date")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateRuleRequest_ToRuleNormalization(t *testing.T) {
	req := CreateRuleRequest{
		Name:       "  Mystery Target  ",
		Type:       "Flat",
		TargetType: "something_unknown",
	}

	rule := req.ToRule()
	assert.Equal(t, "Mystery Target", rule.Name)
	assert.Equal(t, TypeFlat, rule.Type)
	assert.Equal(t, TargetManual, rule.TargetType)
	require.NotNil(t, rule.Multiplier)
	assert.Equal(t, 1.0, *rule.Multiplier)
	assert.True(t, rule.IsActive)
}

func TestCreateRuleRequest_ToRuleParsesDates(t *testing.T) {
	req := CreateRuleRequest{
		Name:       "Seasonal",
		Type:       "milestone",
		TargetType: "new_subs",
		StartDate:  ptrStr("2025-06-01"),
		EndDate:    ptrStr("2025-06-30T23:59:59Z"),
	}

	rule := req.ToRule()
	require.NotNil(t, rule.StartDate)
	require.NotNil(t, rule.EndDate)
	assert.Equal(t, "2025-06-01", rule.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2025-06-30", rule.EndDate.Format("2006-01-02"))
}
