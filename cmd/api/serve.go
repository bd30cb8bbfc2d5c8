package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	httpadp "landbank-backend/internal/adapter/http"
	"landbank-backend/internal/adapter/middleware"
	"landbank-backend/internal/adapter/repository/mysql"
	"landbank-backend/internal/config"
	"landbank-backend/internal/domain/loan"
	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/infrastructure/cache"
	"landbank-backend/internal/infrastructure/db"
	"landbank-backend/internal/infrastructure/logger"
	"landbank-backend/internal/infrastructure/metrics"
	"landbank-backend/internal/usecase/approval"
	"landbank-backend/internal/usecase/interest"
	loanuc "landbank-backend/internal/usecase/loan"
	"landbank-backend/internal/usecase/party"
	"landbank-backend/internal/usecase/report"
	siteuc "landbank-backend/internal/usecase/site"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply schema migrations before serving")
	return cmd
}

// bootstrap loads config and opens the logger and database shared by every command.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.Options{
		LogLevel:     cfg.DBLogLevel,
		MaxOpenConns: cfg.DBMaxOpenConns,
		Logger:       log,
	})
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	return cfg, log, gdb, nil
}

func serve(ctx context.Context, migrate bool) error {
	cfg, log, gdb, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if migrate {
		if err := db.Migrate(ctx, gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("open redis: %w", err)
	}
	defer rdb.Close()

	m := metrics.New()
	policy := cfg.Workflow.Policy()
	sites := site.NewMachine(policy)
	loans := loan.NewMachine(policy)

	tx := mysql.NewGormUoW(gdb)
	flows := approval.NewUsecase(tx, sites, loans,
		approval.WithObserver(m),
		approval.WithLogger(log),
	)

	h := httpadp.Handlers{
		Health:    httpadp.NewHandler(),
		Parties:   httpadp.NewPartyHandler(party.NewUsecase(mysql.NewPartyRepository(gdb), log), log),
		Sites:     httpadp.NewSiteHandler(siteuc.NewUsecase(tx, sites, log), log),
		Approvals: httpadp.NewApprovalHandler(flows, log),
		Interests: httpadp.NewInterestHandler(interest.NewUsecase(tx, sites, flows, log), log),
		Loans:     httpadp.NewLoanHandler(loanuc.NewUsecase(tx, loans, log), log),
		Reports:   httpadp.NewReportHandler(report.NewUsecase(mysql.NewPortfolioRepository(gdb), sites, log), log),
	}
	e := httpadp.NewRouter(h, httpadp.RouterConfig{
		Logger:   log,
		Metrics:  m.Handler(),
		Observer: m,
		Auth:     middleware.Auth([]byte(cfg.JWTSecret)),
		Idempotency: middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second,
			middleware.WithIdempotencyLogger(log),
			middleware.WithIdempotencyObserver(m),
		),
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
