package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"landbank-backend/internal/adapter/middleware"
	"landbank-backend/internal/adapter/repository/mysql"
	"landbank-backend/internal/config"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/internal/infrastructure/db"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, gdb, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := db.Migrate(cmd.Context(), gdb); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("schema migrated", zap.Int("models", len(db.Models())))
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default reference vocabulary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, gdb, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := mysql.NewReferenceRepository(gdb).Seed(cmd.Context()); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			log.Info("reference data seeded")
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		userID uint64
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for a user and role",
		Example: `  landbank token --user 12 --role committee
  landbank token --user 3 --role registrant --ttl 1h`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("missing JWT_SECRET")
			}
			if userID == 0 {
				return errors.New("--user must be a positive id")
			}
			r, ok := workflow.ParseRole(role)
			if !ok {
				return fmt.Errorf("unknown role %q", role)
			}
			tok, err := middleware.IssueToken([]byte(cfg.JWTSecret), workflow.Actor{UserID: userID, Role: r}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&userID, "user", 0, "numeric user id placed in sub")
	cmd.Flags().StringVar(&role, "role", "", "workflow role")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
