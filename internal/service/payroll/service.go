package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/agencydesk/crm-backend-go/internal/domain/assignment"
	"github.com/agencydesk/crm-backend-go/internal/domain/auth"
	"github.com/agencydesk/crm-backend-go/internal/domain/bonus"
	"github.com/agencydesk/crm-backend-go/internal/domain/kpi"
	"github.com/agencydesk/crm-backend-go/internal/domain/payroll"
	"github.com/agencydesk/crm-backend-go/internal/domain/shift"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
	"github.com/agencydesk/crm-backend-go/internal/pkg/database"
	"github.com/agencydesk/crm-backend-go/internal/pkg/money"
	"github.com/agencydesk/crm-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/xuri/excelize/v2"
)

type payrollService struct {
	payrollRepo    payroll.PayrollRepository
	shiftRepo      shift.ShiftRepository
	kpiRepo        kpi.SnapshotRepository
	userRepo       user.UserRepository
	assignmentRepo assignment.AssignmentRepository
	ruleRepo       bonus.RuleRepository

	// runTx wraps fn in a database transaction. Swappable in tests.
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

// Generate implements payroll.PayrollService.
func (s *payrollService) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResponse, error) {
	start, end, err := req.ParseRange(time.Now())
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	period, err := s.payrollRepo.FindOrCreatePeriod(ctx, start, end)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	shifts, err := s.shiftRepo.ListApprovedClosedInRange(ctx, start, end)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	// Total worked minutes per chatter; rounding to cents happens once
	// per chatter, not per shift.
	minutesByChatter := map[string]int64{}
	for _, sh := range shifts {
		minutesByChatter[sh.ChatterID] += sh.WorkedMinutes()
	}

	sums, err := s.kpiRepo.SumByChatter(ctx, start, end)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}
	sumsByChatter := make(map[string]kpi.PeriodSum, len(sums))
	for _, sum := range sums {
		sumsByChatter[sum.ChatterID] = sum
	}

	chatters, err := s.userRepo.ListByRole(ctx, user.RoleChatter)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	generated := 0
	for _, chatter := range chatters {
		minutes, hasShifts := minutesByChatter[chatter.ID]
		sum, hasKPIs := sumsByChatter[chatter.ID]
		if !hasShifts && !hasKPIs {
			continue
		}

		basePay := money.BasePayCents(minutes, chatter.EffectiveHourlyRateCents())
		netSales := money.NetSalesCents(sum.RevenueCents)
		commission := money.CommissionCents(netSales, chatter.EffectiveCommissionBps())

		_, err := s.payrollRepo.Upsert(ctx, payroll.Payroll{
			ChatterID:          chatter.ID,
			PayPeriodID:        period.ID,
			HoursWorkedMinutes: minutes,
			GrossSalesCents:    sum.RevenueCents,
			NetSalesCents:      netSales,
			BasePayCents:       basePay,
			CommissionCents:    commission,
		})
		if err != nil {
			return payroll.GenerateResponse{}, err
		}
		generated++
	}

	return payroll.GenerateResponse{
		PayPeriod: payroll.ToPeriodResponse(period),
		Generated: generated,
	}, nil
}

// CreatePeriod implements payroll.PayrollService.
func (s *payrollService) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PayPeriodResponse, error) {
	start, end, err := req.ParseRange()
	if err != nil {
		return payroll.PayPeriodResponse{}, err
	}

	period, err := s.payrollRepo.FindOrCreatePeriod(ctx, start, end)
	if err != nil {
		return payroll.PayPeriodResponse{}, err
	}

	return payroll.ToPeriodResponse(period), nil
}

// ListPeriods implements payroll.PayrollService.
func (s *payrollService) ListPeriods(ctx context.Context) ([]payroll.PayPeriodResponse, error) {
	periods, err := s.payrollRepo.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayPeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, payroll.ToPeriodResponse(p))
	}
	return responses, nil
}

// ApplyBonuses implements payroll.PayrollService.
func (s *payrollService) ApplyBonuses(ctx context.Context, payrollID string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if p.IsPaid() {
		return payroll.PayrollResponse{}, payroll.ErrPayrollPaid
	}

	period, err := s.payrollRepo.GetPeriod(ctx, p.PayPeriodID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	sum, err := s.kpiRepo.SumForChatter(ctx, p.ChatterID, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	creatorIDs, err := s.assignmentRepo.ActiveCreatorIDs(ctx, p.ChatterID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	evaluated := bonus.Evaluate(bonus.EvalContext{
		ChatterID:        p.ChatterID,
		PeriodStart:      period.StartDate,
		PeriodEnd:        period.EndDate,
		GrossSalesCents:  sum.RevenueCents,
		MessagesSent:     sum.MessagesSent,
		NewSubs:          sum.NewSubs,
		TipsCents:        sum.TipsReceivedCents,
		ActiveCreatorIDs: creatorIDs,
	}, rules)

	replacements := make([]payroll.Bonus, 0, len(evaluated))
	for _, e := range evaluated {
		ruleID := e.RuleID
		replacements = append(replacements, payroll.Bonus{
			PayrollID:   p.ID,
			BonusRuleID: &ruleID,
			Description: e.Description,
			AmountCents: e.AmountCents,
		})
	}

	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.ReplaceAutoBonuses(txCtx, p.ID, replacements); err != nil {
			return err
		}

		// Manual awards survive re-evaluation; the total is rebuilt from
		// what is actually on the payroll now.
		remaining, err := s.payrollRepo.ListBonuses(txCtx, p.ID)
		if err != nil {
			return err
		}
		var total int64
		for _, b := range remaining {
			total += b.AmountCents
		}

		return s.payrollRepo.UpdateTotals(txCtx, p.ID, total)
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.Get(ctx, p.ID)
}

// AddManualBonus implements payroll.PayrollService.
func (s *payrollService) AddManualBonus(ctx context.Context, payrollID string, req payroll.CreateBonusRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	p, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if p.IsPaid() {
		return payroll.PayrollResponse{}, payroll.ErrPayrollPaid
	}

	err = s.runTx(ctx, func(txCtx context.Context) error {
		if _, err := s.payrollRepo.InsertBonus(txCtx, payroll.Bonus{
			PayrollID:   p.ID,
			Description: req.Description,
			AmountCents: req.AmountCents,
		}); err != nil {
			return err
		}

		bonuses, err := s.payrollRepo.ListBonuses(txCtx, p.ID)
		if err != nil {
			return err
		}
		var total int64
		for _, b := range bonuses {
			total += b.AmountCents
		}

		return s.payrollRepo.UpdateTotals(txCtx, p.ID, total)
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.Get(ctx, p.ID)
}

// Approve implements payroll.PayrollService.
func (s *payrollService) Approve(ctx context.Context, payrollID string) (payroll.PayrollResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	p, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if p.IsPaid() {
		return payroll.PayrollResponse{}, payroll.ErrPayrollPaid
	}
	if !p.IsDraft() {
		return payroll.PayrollResponse{}, payroll.ErrPayrollNotDraft
	}

	switch principal.Role {
	case user.RoleAdmin:
	case user.RoleSupervisor:
		if p.ChatterSupervisorID == nil || *p.ChatterSupervisorID != principal.UserID {
			return payroll.PayrollResponse{}, user.ErrNotTeamSupervisor
		}
	default:
		return payroll.PayrollResponse{}, user.ErrApproverRoleRequired
	}

	now := time.Now().UTC()
	p.Status = payroll.StatusApproved
	p.ApprovedByID = &principal.UserID
	p.ApprovedAt = &now

	if err := s.payrollRepo.UpdateStatus(ctx, p); err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.Get(ctx, p.ID)
}

// Revert implements payroll.PayrollService.
func (s *payrollService) Revert(ctx context.Context, payrollID string) (payroll.PayrollResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if principal.Role != user.RoleAdmin {
		return payroll.PayrollResponse{}, user.ErrAdminPrivilegeRequired
	}

	p, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if p.IsPaid() {
		return payroll.PayrollResponse{}, payroll.ErrPayrollPaid
	}
	if !p.IsApproved() {
		return payroll.PayrollResponse{}, payroll.ErrPayrollNotApproved
	}

	p.Status = payroll.StatusDraft
	p.ApprovedByID = nil
	p.ApprovedAt = nil

	if err := s.payrollRepo.UpdateStatus(ctx, p); err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.Get(ctx, p.ID)
}

// MarkPaid implements payroll.PayrollService.
func (s *payrollService) MarkPaid(ctx context.Context, payrollID string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if p.IsPaid() {
		return payroll.PayrollResponse{}, payroll.ErrPayrollPaid
	}
	if !p.IsApproved() {
		return payroll.PayrollResponse{}, payroll.ErrPayrollNotApproved
	}

	now := time.Now().UTC()
	p.Status = payroll.StatusPaid
	p.PaidAt = &now

	if err := s.payrollRepo.UpdateStatus(ctx, p); err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.Get(ctx, p.ID)
}

// List implements payroll.PayrollService.
func (s *payrollService) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	switch principal.Role {
	case user.RoleChatter:
		filter.ChatterID = &principal.UserID
		filter.SupervisorID = nil
	case user.RoleSupervisor:
		if filter.ChatterID == nil {
			filter.SupervisorID = &principal.UserID
		}
	}

	payrolls, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		responses = append(responses, payroll.ToResponse(p))
	}
	return responses, nil
}

// Get implements payroll.PayrollService.
func (s *payrollService) Get(ctx context.Context, payrollID string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if principal, err := auth.PrincipalFromContext(ctx); err == nil {
		if principal.Role == user.RoleChatter && p.ChatterID != principal.UserID {
			return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
		}
	}

	bonuses, err := s.payrollRepo.ListBonuses(ctx, p.ID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	resp := payroll.ToResponse(p)
	resp.Bonuses = make([]payroll.BonusResponse, 0, len(bonuses))
	for _, b := range bonuses {
		resp.Bonuses = append(resp.Bonuses, payroll.ToBonusResponse(b))
	}
	return resp, nil
}

var exportHeader = []string{
	"Chatter", "Email", "Period Start", "Period End", "Hours Worked",
	"Base Pay", "Commission", "Bonuses", "Deductions", "Net Pay", "Status",
}

func (s *payrollService) exportRows(ctx context.Context, payPeriodID string) (payroll.PayPeriod, [][]string, error) {
	period, err := s.payrollRepo.GetPeriod(ctx, payPeriodID)
	if err != nil {
		return payroll.PayPeriod{}, nil, err
	}

	filter := payroll.PayrollFilter{PayPeriodID: &payPeriodID}

	// Supervisors export their own team only.
	if principal, err := auth.PrincipalFromContext(ctx); err == nil {
		if principal.Role == user.RoleSupervisor {
			filter.SupervisorID = &principal.UserID
		}
	}

	payrolls, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.PayPeriod{}, nil, err
	}

	rows := make([][]string, 0, len(payrolls))
	for _, p := range payrolls {
		name, email := "", ""
		if p.ChatterName != nil {
			name = *p.ChatterName
		}
		if p.ChatterEmail != nil {
			email = *p.ChatterEmail
		}
		rows = append(rows, []string{
			name,
			email,
			period.StartDate.Format("2006-01-02"),
			period.EndDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", float64(p.HoursWorkedMinutes)/60),
			money.FormatUSD(p.BasePayCents),
			money.FormatUSD(p.CommissionCents),
			money.FormatUSD(p.BonusTotalCents),
			money.FormatUSD(p.DeductionsCents),
			money.FormatUSD(p.NetPayCents),
			string(p.Status),
		})
	}

	return period, rows, nil
}

func exportFilename(period payroll.PayPeriod, ext string) string {
	return fmt.Sprintf("payroll_%s_%s.%s",
		period.StartDate.Format("2006-01-02"),
		period.EndDate.Format("2006-01-02"),
		ext,
	)
}

// ExportCSV implements payroll.PayrollService.
func (s *payrollService) ExportCSV(ctx context.Context, payPeriodID string) ([]byte, string, error) {
	period, rows, err := s.exportRows(ctx, payPeriodID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), exportFilename(period, "csv"), nil
}

// ExportXLSX implements payroll.PayrollService.
func (s *payrollService) ExportXLSX(ctx context.Context, payPeriodID string) ([]byte, string, error) {
	period, rows, err := s.exportRows(ctx, payPeriodID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payroll"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}
	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, "", err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), exportFilename(period, "xlsx"), nil
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	shiftRepo shift.ShiftRepository,
	kpiRepo kpi.SnapshotRepository,
	userRepo user.UserRepository,
	assignmentRepo assignment.AssignmentRepository,
	ruleRepo bonus.RuleRepository,
) payroll.PayrollService {
	return &payrollService{
		payrollRepo:    payrollRepo,
		shiftRepo:      shiftRepo,
		kpiRepo:        kpiRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		ruleRepo:       ruleRepo,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(context.WithValue(ctx, "tx", tx))
			})
		},
	}
}
