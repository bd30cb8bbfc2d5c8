package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"landbank-backend/internal/adapter/middleware"
)

// Handlers groups everything mounted under /api/v1.
type Handlers struct {
	Health    *Handler
	Parties   *PartyHandler
	Sites     *SiteHandler
	Approvals *ApprovalHandler
	Interests *InterestHandler
	Loans     *LoanHandler
	Reports   *ReportHandler
}

type RouterConfig struct {
	Logger      *zap.Logger
	Metrics     http.Handler
	Observer    middleware.HTTPObserver
	Auth        echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
}

func NewRouter(h Handlers, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.Use(echomw.Recover(), middleware.RequestLogger(cfg.Logger), middleware.Metrics(cfg.Observer))

	e.GET("/health", h.Health.Health)
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}

	api := e.Group("/api/v1")
	if cfg.Auth != nil {
		api.Use(cfg.Auth)
	}
	// workflow writes replay on retry
	idem := []echo.MiddlewareFunc{}
	if cfg.Idempotency != nil {
		idem = append(idem, cfg.Idempotency)
	}

	api.POST("/landowners", h.Parties.CreateLandOwner)
	api.GET("/landowners/:id", h.Parties.GetLandOwner)
	api.POST("/investors", h.Parties.CreateInvestor)
	api.GET("/investors/:id", h.Parties.GetInvestor)

	api.POST("/sites", h.Sites.Create)
	api.GET("/sites/:site_id", h.Sites.Get)
	api.PATCH("/sites/:site_id", h.Sites.UpdateDraft)
	api.PUT("/sites/:site_id/coordinates", h.Sites.ReplaceCoordinates)
	api.POST("/sites/:site_id/transitions", h.Approvals.AdvanceSite, idem...)
	api.GET("/sites/:site_id/transitions", h.Approvals.AllowedSiteTargets)
	api.GET("/sites/:site_id/approvals", h.Approvals.SiteApprovals)
	api.POST("/sites/:site_id/investors", h.Interests.Register)
	api.GET("/sites/:site_id/investors", h.Interests.List)
	api.POST("/sites/:site_id/award", h.Interests.Award, idem...)

	api.GET("/portfolio", h.Reports.Portfolio)
	api.GET("/portfolio/export", h.Reports.Export)

	api.POST("/loans", h.Loans.CreateLoan)
	api.GET("/loans/:loan_id", h.Loans.GetLoan)
	api.POST("/loans/:loan_id/transitions", h.Approvals.AdvanceLoan, idem...)
	api.GET("/loans/:loan_id/approvals", h.Approvals.LoanApprovals)

	api.GET("/stages/:workflow", h.Approvals.Stages)
	return e
}
