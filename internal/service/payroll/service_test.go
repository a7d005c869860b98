package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/domain/assignment"
	"github.com/agencydesk/crm-backend-go/internal/domain/bonus"
	"github.com/agencydesk/crm-backend-go/internal/domain/kpi"
	"github.com/agencydesk/crm-backend-go/internal/domain/payroll"
	"github.com/agencydesk/crm-backend-go/internal/domain/shift"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== in-memory fakes =====

type fakePayrollRepo struct {
	periods  map[string]payroll.PayPeriod
	payrolls map[string]payroll.Payroll
	bonuses  map[string][]payroll.Bonus
	nextID   int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		periods:  map[string]payroll.PayPeriod{},
		payrolls: map[string]payroll.Payroll{},
		bonuses:  map[string][]payroll.Bonus{},
	}
}

func (f *fakePayrollRepo) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakePayrollRepo) FindOrCreatePeriod(_ context.Context, start, end time.Time) (payroll.PayPeriod, error) {
	key := start.Format(time.RFC3339) + "|" + end.Format(time.RFC3339)
	if p, ok := f.periods[key]; ok {
		return p, nil
	}
	p := payroll.PayPeriod{
		ID:        f.id("period"),
		StartDate: start,
		EndDate:   end,
		Status:    payroll.PeriodOpen,
		CreatedAt: time.Now(),
	}
	f.periods[key] = p
	return p, nil
}

func (f *fakePayrollRepo) ListPeriods(_ context.Context) ([]payroll.PayPeriod, error) {
	out := []payroll.PayPeriod{}
	for _, p := range f.periods {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePayrollRepo) GetPeriod(_ context.Context, id string) (payroll.PayPeriod, error) {
	for _, p := range f.periods {
		if p.ID == id {
			return p, nil
		}
	}
	return payroll.PayPeriod{}, payroll.ErrPayPeriodNotFound
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.Payroll, error) {
	p, ok := f.payrolls[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (f *fakePayrollRepo) Upsert(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	for id, existing := range f.payrolls {
		if existing.ChatterID == p.ChatterID && existing.PayPeriodID == p.PayPeriodID {
			existing.HoursWorkedMinutes = p.HoursWorkedMinutes
			existing.GrossSalesCents = p.GrossSalesCents
			existing.NetSalesCents = p.NetSalesCents
			existing.BasePayCents = p.BasePayCents
			existing.CommissionCents = p.CommissionCents
			existing.NetPayCents = p.BasePayCents + p.CommissionCents +
				existing.BonusTotalCents - existing.DeductionsCents
			f.payrolls[id] = existing
			return existing, nil
		}
	}
	p.ID = f.id("payroll")
	p.Status = payroll.StatusDraft
	p.NetPayCents = p.BasePayCents + p.CommissionCents
	f.payrolls[p.ID] = p
	return p, nil
}

func (f *fakePayrollRepo) List(_ context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, error) {
	out := []payroll.Payroll{}
	for _, p := range f.payrolls {
		if filter.ChatterID != nil && p.ChatterID != *filter.ChatterID {
			continue
		}
		if filter.PayPeriodID != nil && p.PayPeriodID != *filter.PayPeriodID {
			continue
		}
		if filter.SupervisorID != nil {
			if p.ChatterSupervisorID == nil || *p.ChatterSupervisorID != *filter.SupervisorID {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePayrollRepo) ListBonuses(_ context.Context, payrollID string) ([]payroll.Bonus, error) {
	return f.bonuses[payrollID], nil
}

func (f *fakePayrollRepo) InsertBonus(_ context.Context, b payroll.Bonus) (payroll.Bonus, error) {
	b.ID = f.id("bonus")
	f.bonuses[b.PayrollID] = append(f.bonuses[b.PayrollID], b)
	return b, nil
}

func (f *fakePayrollRepo) ReplaceAutoBonuses(ctx context.Context, payrollID string, bonuses []payroll.Bonus) error {
	kept := []payroll.Bonus{}
	for _, b := range f.bonuses[payrollID] {
		if b.IsManual() {
			kept = append(kept, b)
		}
	}
	f.bonuses[payrollID] = kept
	for _, b := range bonuses {
		b.PayrollID = payrollID
		if _, err := f.InsertBonus(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakePayrollRepo) UpdateTotals(_ context.Context, payrollID string, bonusTotalCents int64) error {
	p, ok := f.payrolls[payrollID]
	if !ok {
		return payroll.ErrPayrollNotFound
	}
	p.BonusTotalCents = bonusTotalCents
	p.NetPayCents = p.BasePayCents + p.CommissionCents + bonusTotalCents - p.DeductionsCents
	f.payrolls[payrollID] = p
	return nil
}

func (f *fakePayrollRepo) UpdateStatus(_ context.Context, p payroll.Payroll) error {
	existing, ok := f.payrolls[p.ID]
	if !ok {
		return payroll.ErrPayrollNotFound
	}
	existing.Status = p.Status
	existing.ApprovedByID = p.ApprovedByID
	existing.ApprovedAt = p.ApprovedAt
	existing.PaidAt = p.PaidAt
	f.payrolls[p.ID] = existing
	return nil
}

type fakeShiftRepo struct {
	approved []shift.Shift
}

func (f *fakeShiftRepo) Create(_ context.Context, s shift.Shift) (shift.Shift, error) { return s, nil }
func (f *fakeShiftRepo) GetByID(_ context.Context, _ string) (shift.Shift, error) {
	return shift.Shift{}, shift.ErrShiftNotFound
}
func (f *fakeShiftRepo) GetOpenShift(_ context.Context, _ string) (*shift.Shift, error) {
	return nil, nil
}
func (f *fakeShiftRepo) Update(_ context.Context, _ shift.Shift) error { return nil }
func (f *fakeShiftRepo) List(_ context.Context, _ shift.ShiftFilter) ([]shift.Shift, error) {
	return nil, nil
}
func (f *fakeShiftRepo) ListApprovedClosedInRange(_ context.Context, _, _ time.Time) ([]shift.Shift, error) {
	return f.approved, nil
}

type fakeKPIRepo struct {
	sums []kpi.PeriodSum
}

func (f *fakeKPIRepo) Create(_ context.Context, s kpi.Snapshot) (kpi.Snapshot, error) { return s, nil }
func (f *fakeKPIRepo) List(_ context.Context, _ kpi.SnapshotFilter) ([]kpi.Snapshot, error) {
	return nil, nil
}
func (f *fakeKPIRepo) SumByChatter(_ context.Context, _, _ time.Time) ([]kpi.PeriodSum, error) {
	return f.sums, nil
}
func (f *fakeKPIRepo) SumForChatter(_ context.Context, chatterID string, _, _ time.Time) (kpi.PeriodSum, error) {
	for _, s := range f.sums {
		if s.ChatterID == chatterID {
			return s, nil
		}
	}
	return kpi.PeriodSum{ChatterID: chatterID}, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }
func (f *fakeUserRepo) Update(_ context.Context, _ user.UpdateUserRequest) error { return nil }
func (f *fakeUserRepo) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	out := []user.User{}
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}
func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error) { return f.users, nil }

type fakeAssignmentRepo struct {
	byChatter map[string][]string
}

func (f *fakeAssignmentRepo) GetByID(_ context.Context, _ string) (assignment.Assignment, error) {
	return assignment.Assignment{}, assignment.ErrAssignmentNotFound
}
func (f *fakeAssignmentRepo) GetActive(_ context.Context, _, _ string) (*assignment.Assignment, error) {
	return nil, nil
}
func (f *fakeAssignmentRepo) Create(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	return a, nil
}
func (f *fakeAssignmentRepo) SetPrimary(_ context.Context, _ string, _ bool) error { return nil }
func (f *fakeAssignmentRepo) ClearPrimaryForChatter(_ context.Context, _, _ string) error {
	return nil
}
func (f *fakeAssignmentRepo) Unassign(_ context.Context, _ string) error { return nil }
func (f *fakeAssignmentRepo) List(_ context.Context, _ bool) ([]assignment.Assignment, error) {
	return nil, nil
}
func (f *fakeAssignmentRepo) ActiveCreatorIDs(_ context.Context, chatterID string) ([]string, error) {
	return f.byChatter[chatterID], nil
}
func (f *fakeAssignmentRepo) ActiveCreatorIDsByChatter(_ context.Context) (map[string][]string, error) {
	return f.byChatter, nil
}

type fakeRuleRepo struct {
	rules []bonus.Rule
}

func (f *fakeRuleRepo) Create(_ context.Context, r bonus.Rule) (bonus.Rule, error) { return r, nil }
func (f *fakeRuleRepo) GetByID(_ context.Context, _ string) (bonus.Rule, error) {
	return bonus.Rule{}, bonus.ErrRuleNotFound
}
func (f *fakeRuleRepo) Update(_ context.Context, _ bonus.Rule) error { return nil }
func (f *fakeRuleRepo) Delete(_ context.Context, _ string) error     { return nil }
func (f *fakeRuleRepo) List(_ context.Context) ([]bonus.Rule, error) { return f.rules, nil }
func (f *fakeRuleRepo) ListActive(_ context.Context) ([]bonus.Rule, error) {
	active := []bonus.Rule{}
	for _, r := range f.rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

// ===== helpers =====

func newTestService(
	payrollRepo *fakePayrollRepo,
	shiftRepo *fakeShiftRepo,
	kpiRepo *fakeKPIRepo,
	userRepo *fakeUserRepo,
	assignmentRepo *fakeAssignmentRepo,
	ruleRepo *fakeRuleRepo,
) *payrollService {
	return &payrollService{
		payrollRepo:    payrollRepo,
		shiftRepo:      shiftRepo,
		kpiRepo:        kpiRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		ruleRepo:       ruleRepo,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func ctxWithRole(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	ta := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ta.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   userID + "@example.com",
		"role":    string(role),
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func ptrI64(v int64) *int64 { return &v }

func ptrStr(v string) *string { return &v }

func closedShift(chatterID string, clockIn time.Time, workedHours int, breakMinutes int) shift.Shift {
	clockOut := clockIn.Add(time.Duration(workedHours) * time.Hour)
	now := time.Now()
	return shift.Shift{
		ID:           "shift-" + chatterID,
		ChatterID:    chatterID,
		ClockIn:      clockIn,
		ClockOut:     &clockOut,
		BreakMinutes: breakMinutes,
		ApprovedAt:   &now,
	}
}

// ===== tests =====

func TestGenerate_ComputesBasePayAndCommission(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	payrollRepo := newFakePayrollRepo()
	svc := newTestService(
		payrollRepo,
		&fakeShiftRepo{approved: []shift.Shift{closedShift("chatter-1", start.Add(8*time.Hour), 8, 30)}},
		&fakeKPIRepo{sums: []kpi.PeriodSum{{ChatterID: "chatter-1", RevenueCents: 100000}}},
		&fakeUserRepo{users: []user.User{{
			ID:              "chatter-1",
			Role:            user.RoleChatter,
			Status:          user.StatusActive,
			HourlyRateCents: ptrI64(2000),
			CommissionBps:   ptrI64(500),
		}}},
		&fakeAssignmentRepo{},
		&fakeRuleRepo{},
	)

	resp, err := svc.Generate(context.Background(), payroll.GenerateRequest{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-08",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generated)

	var p payroll.Payroll
	for _, v := range payrollRepo.payrolls {
		p = v
	}
	// 450 worked minutes at $20/h = $150.00
	assert.Equal(t, int64(15000), p.BasePayCents)
	// 5% of $800.00 net (gross $1000.00 minus 20% fee) = $40.00
	assert.Equal(t, int64(4000), p.CommissionCents)
	assert.Equal(t, int64(19000), p.NetPayCents)
	assert.Equal(t, payroll.StatusDraft, p.Status)
}

func TestGenerate_InvalidRange(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), &fakeShiftRepo{}, &fakeKPIRepo{}, &fakeUserRepo{}, &fakeAssignmentRepo{}, &fakeRuleRepo{})

	_, err := svc.Generate(context.Background(), payroll.GenerateRequest{
		StartDate: "2025-03-08",
		EndDate:   "2025-03-01",
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidRange)

	_, err = svc.Generate(context.Background(), payroll.GenerateRequest{
		StartDate: "not-a-date",
		EndDate:   "2025-03-01",
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidRange)
}

func TestGenerate_IdempotentAndPreservesBonusTotals(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	payrollRepo := newFakePayrollRepo()
	svc := newTestService(
		payrollRepo,
		&fakeShiftRepo{approved: []shift.Shift{closedShift("chatter-1", start.Add(8*time.Hour), 4, 0)}},
		&fakeKPIRepo{sums: []kpi.PeriodSum{{ChatterID: "chatter-1", RevenueCents: 50000}}},
		&fakeUserRepo{users: []user.User{{
			ID:              "chatter-1",
			Role:            user.RoleChatter,
			Status:          user.StatusActive,
			HourlyRateCents: ptrI64(1500),
		}}},
		&fakeAssignmentRepo{},
		&fakeRuleRepo{},
	)

	req := payroll.GenerateRequest{StartDate: "2025-03-01", EndDate: "2025-03-08"}
	_, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, payrollRepo.payrolls, 1)

	var payrollID string
	for id := range payrollRepo.payrolls {
		payrollID = id
	}
	first := payrollRepo.payrolls[payrollID]
	assert.Equal(t, int64(240), first.HoursWorkedMinutes)
	assert.Equal(t, int64(50000), first.GrossSalesCents)
	assert.Equal(t, int64(40000), first.NetSalesCents)

	require.NoError(t, payrollRepo.UpdateTotals(context.Background(), payrollID, 2500))

	_, err = svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, payrollRepo.payrolls, 1)
	assert.Len(t, payrollRepo.periods, 1)

	p := payrollRepo.payrolls[payrollID]
	assert.Equal(t, int64(240), p.HoursWorkedMinutes)
	assert.Equal(t, int64(50000), p.GrossSalesCents)
	assert.Equal(t, int64(40000), p.NetSalesCents)
	assert.Equal(t, int64(6000), p.BasePayCents)
	assert.Equal(t, int64(2500), p.BonusTotalCents)
	assert.Equal(t, int64(8500), p.NetPayCents)
}

func TestApplyBonuses_ReplacesAutoRowsKeepsManual(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	payrollRepo := newFakePayrollRepo()
	period, err := payrollRepo.FindOrCreatePeriod(context.Background(), start, end)
	require.NoError(t, err)

	p, err := payrollRepo.Upsert(context.Background(), payroll.Payroll{
		ChatterID:       "chatter-1",
		PayPeriodID:     period.ID,
		BasePayCents:    10000,
		CommissionCents: 2000,
	})
	require.NoError(t, err)

	// One manual award and one stale rule-linked row from a previous run.
	_, err = payrollRepo.InsertBonus(context.Background(), payroll.Bonus{
		PayrollID:   p.ID,
		Description: "Spot bonus",
		AmountCents: 5000,
	})
	require.NoError(t, err)
	_, err = payrollRepo.InsertBonus(context.Background(), payroll.Bonus{
		PayrollID:   p.ID,
		BonusRuleID: ptrStr("rule-old"),
		Description: "Stale",
		AmountCents: 99999,
	})
	require.NoError(t, err)

	svc := newTestService(
		payrollRepo,
		&fakeShiftRepo{},
		&fakeKPIRepo{sums: []kpi.PeriodSum{{ChatterID: "chatter-1", RevenueCents: 600000}}},
		&fakeUserRepo{},
		&fakeAssignmentRepo{},
		&fakeRuleRepo{rules: []bonus.Rule{{
			ID:              "rule-1",
			Name:            "Revenue Milestone",
			Type:            bonus.TypeMilestone,
			TargetType:      bonus.TargetRevenue,
			TargetThreshold: ptrI64(500000),
			FlatAmountCents: ptrI64(1000),
			IsActive:        true,
		}}},
	)

	resp, err := svc.ApplyBonuses(context.Background(), p.ID)
	require.NoError(t, err)

	require.Len(t, resp.Bonuses, 2)
	var manualCents, autoCents int64
	for _, b := range resp.Bonuses {
		if b.Manual {
			manualCents += b.AmountCents
		} else {
			autoCents += b.AmountCents
			assert.Equal(t, "rule-1", *b.BonusRuleID)
		}
	}
	assert.Equal(t, int64(5000), manualCents)
	assert.Equal(t, int64(1000), autoCents)
	assert.Equal(t, int64(6000), resp.BonusTotalCents)
	assert.Equal(t, int64(10000+2000+6000), resp.NetPayCents)
}

func TestApplyBonuses_PaidPayrollRejected(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	period, err := payrollRepo.FindOrCreatePeriod(context.Background(), time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)
	p, err := payrollRepo.Upsert(context.Background(), payroll.Payroll{ChatterID: "chatter-1", PayPeriodID: period.ID})
	require.NoError(t, err)
	p.Status = payroll.StatusPaid
	require.NoError(t, payrollRepo.UpdateStatus(context.Background(), p))

	svc := newTestService(payrollRepo, &fakeShiftRepo{}, &fakeKPIRepo{}, &fakeUserRepo{}, &fakeAssignmentRepo{}, &fakeRuleRepo{})

	_, err = svc.ApplyBonuses(context.Background(), p.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollPaid)
}

func TestApprovalWorkflow(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	period, err := payrollRepo.FindOrCreatePeriod(context.Background(), time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)

	supervisorID := "supervisor-1"
	p, err := payrollRepo.Upsert(context.Background(), payroll.Payroll{ChatterID: "chatter-1", PayPeriodID: period.ID})
	require.NoError(t, err)
	stored := payrollRepo.payrolls[p.ID]
	stored.ChatterSupervisorID = &supervisorID
	payrollRepo.payrolls[p.ID] = stored

	svc := newTestService(payrollRepo, &fakeShiftRepo{}, &fakeKPIRepo{}, &fakeUserRepo{}, &fakeAssignmentRepo{}, &fakeRuleRepo{})

	// Paying a draft is rejected.
	_, err = svc.MarkPaid(context.Background(), p.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotApproved)

	// A supervisor from another team cannot approve.
	_, err = svc.Approve(ctxWithRole(t, "supervisor-2", user.RoleSupervisor), p.ID)
	assert.ErrorIs(t, err, user.ErrNotTeamSupervisor)

	// The chatter's own supervisor can.
	resp, err := svc.Approve(ctxWithRole(t, supervisorID, user.RoleSupervisor), p.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusApproved), resp.Status)

	// Double approval is rejected.
	_, err = svc.Approve(ctxWithRole(t, supervisorID, user.RoleSupervisor), p.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotDraft)

	// Only admins revert.
	_, err = svc.Revert(ctxWithRole(t, supervisorID, user.RoleSupervisor), p.ID)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	resp, err = svc.Revert(ctxWithRole(t, "admin-1", user.RoleAdmin), p.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusDraft), resp.Status)
	assert.Nil(t, resp.ApprovedAt)

	// Approve again and pay out.
	_, err = svc.Approve(ctxWithRole(t, "admin-1", user.RoleAdmin), p.ID)
	require.NoError(t, err)
	resp, err = svc.MarkPaid(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusPaid), resp.Status)
	require.NotNil(t, resp.PaidAt)

	// Paid payrolls are frozen.
	_, err = svc.Revert(ctxWithRole(t, "admin-1", user.RoleAdmin), p.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollPaid)
}

func TestCreatePeriod(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	svc := newTestService(payrollRepo, &fakeShiftRepo{}, &fakeKPIRepo{}, &fakeUserRepo{}, &fakeAssignmentRepo{}, &fakeRuleRepo{})

	resp, err := svc.CreatePeriod(context.Background(), payroll.CreatePeriodRequest{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-15",
	})
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodOpen), resp.Status)

	// Same range resolves to the same period.
	again, err := svc.CreatePeriod(context.Background(), payroll.CreatePeriodRequest{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-15",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, again.ID)
	assert.Len(t, payrollRepo.periods, 1)

	periods, err := svc.ListPeriods(context.Background())
	require.NoError(t, err)
	assert.Len(t, periods, 1)

	// Both dates are required, and the range must be forward.
	_, err = svc.CreatePeriod(context.Background(), payroll.CreatePeriodRequest{StartDate: "2025-03-01"})
	assert.ErrorIs(t, err, payroll.ErrInvalidRange)
	_, err = svc.CreatePeriod(context.Background(), payroll.CreatePeriodRequest{
		StartDate: "2025-03-15",
		EndDate:   "2025-03-01",
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidRange)
}

func TestExportCSV_SupervisorSeesOwnTeamOnly(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	payrollRepo := newFakePayrollRepo()
	period, err := payrollRepo.FindOrCreatePeriod(context.Background(), start, end)
	require.NoError(t, err)

	_, err = payrollRepo.Upsert(context.Background(), payroll.Payroll{
		ChatterID:           "chatter-1",
		PayPeriodID:         period.ID,
		HoursWorkedMinutes:  480,
		BasePayCents:        8000,
		ChatterName:         ptrStr("Alice"),
		ChatterEmail:        ptrStr("alice@example.com"),
		ChatterSupervisorID: ptrStr("supervisor-1"),
	})
	require.NoError(t, err)
	_, err = payrollRepo.Upsert(context.Background(), payroll.Payroll{
		ChatterID:           "chatter-2",
		PayPeriodID:         period.ID,
		HoursWorkedMinutes:  90,
		BasePayCents:        3000,
		ChatterName:         ptrStr("Bob"),
		ChatterEmail:        ptrStr("bob@example.com"),
		ChatterSupervisorID: ptrStr("supervisor-2"),
	})
	require.NoError(t, err)

	svc := newTestService(payrollRepo, &fakeShiftRepo{}, &fakeKPIRepo{}, &fakeUserRepo{}, &fakeAssignmentRepo{}, &fakeRuleRepo{})

	data, filename, err := svc.ExportCSV(ctxWithRole(t, "supervisor-1", user.RoleSupervisor), period.ID)
	require.NoError(t, err)
	assert.Equal(t, "payroll_2025-03-01_2025-03-08.csv", filename)

	out := string(data)
	assert.Contains(t, out, "Hours Worked")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "8.00")
	assert.NotContains(t, out, "Bob")

	// Admins get the full period.
	data, _, err = svc.ExportCSV(ctxWithRole(t, "admin-1", user.RoleAdmin), period.ID)
	require.NoError(t, err)
	out = string(data)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "1.50")
}
