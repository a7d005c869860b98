package main

import (
	"fmt"
	"net/http"

	"github.com/agencydesk/crm-backend-go/internal/config"
	appHTTP "github.com/agencydesk/crm-backend-go/internal/handler/http"
	"github.com/agencydesk/crm-backend-go/internal/pkg/database"
	"github.com/agencydesk/crm-backend-go/internal/pkg/jwt"
	"github.com/agencydesk/crm-backend-go/internal/repository/postgresql"
	authService "github.com/agencydesk/crm-backend-go/internal/service/auth"
	bonusService "github.com/agencydesk/crm-backend-go/internal/service/bonus"
	dashboardService "github.com/agencydesk/crm-backend-go/internal/service/dashboard"
	kpiService "github.com/agencydesk/crm-backend-go/internal/service/kpi"
	payrollService "github.com/agencydesk/crm-backend-go/internal/service/payroll"
	rosterService "github.com/agencydesk/crm-backend-go/internal/service/roster"
	shiftService "github.com/agencydesk/crm-backend-go/internal/service/shift"
	userService "github.com/agencydesk/crm-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	creatorRepo := postgresql.NewCreatorRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	kpiRepo := postgresql.NewKPIRepository(db)
	bonusRuleRepo := postgresql.NewBonusRuleRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(userRepo)
	rosterSvc := rosterService.NewRosterService(db, creatorRepo, assignmentRepo, userRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	kpiSvc := kpiService.NewKPIService(kpiRepo, userRepo, creatorRepo)
	bonusSvc := bonusService.NewBonusService(bonusRuleRepo, userRepo, kpiRepo, assignmentRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		shiftRepo,
		kpiRepo,
		userRepo,
		assignmentRepo,
		bonusRuleRepo,
	)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	userHandler := appHTTP.NewUserHandler(userSvc)
	rosterHandler := appHTTP.NewRosterHandler(rosterSvc, rosterSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	kpiHandler := appHTTP.NewKPIHandler(kpiSvc)
	bonusRuleHandler := appHTTP.NewBonusRuleHandler(bonusSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		userHandler,
		rosterHandler,
		shiftHandler,
		kpiHandler,
		bonusRuleHandler,
		payrollHandler,
		dashboardHandler,
		cfg.App.FrontendURL,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
