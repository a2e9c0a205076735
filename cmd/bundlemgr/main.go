package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pdushie/bundle-management-app-sub001/internal/config"
	"github.com/pdushie/bundle-management-app-sub001/internal/migration"
	"github.com/pdushie/bundle-management-app-sub001/internal/observability"
	"github.com/pdushie/bundle-management-app-sub001/internal/order"
	"github.com/pdushie/bundle-management-app-sub001/internal/pricing"
	"github.com/pdushie/bundle-management-app-sub001/internal/recompute"
	"github.com/pdushie/bundle-management-app-sub001/internal/seed"
	"github.com/pdushie/bundle-management-app-sub001/internal/server"
	"github.com/pdushie/bundle-management-app-sub001/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "bundlemgr",
		Short:   "Bundle order management and billing service",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newServeCmd(), newRecomputeCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the Standard pricing profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the pricing and order API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newRecomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Run one batch recompute pass over all orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecompute()
		},
	}
}

func baseModules() fx.Option {
	return fx.Options(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
	)
}

func runMigrate() error {
	app := fx.New(
		baseModules(),
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runSeed() error {
	app := fx.New(
		baseModules(),
		fx.Invoke(func(gdb *gorm.DB, node *snowflake.Node) error {
			return seed.EnsureStandardProfile(gdb, node)
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		baseModules(),
		pricing.Module,
		order.Module,
		recompute.Module,
		server.Module,
		fx.Invoke(startRecomputeLoop),
	)
	app.Run()
}

func runRecompute() error {
	var runErr error
	app := fx.New(
		baseModules(),
		pricing.Module,
		order.Module,
		recompute.Module,
		fx.Invoke(func(r *recompute.Runner) {
			_, runErr = r.Run(context.Background())
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("recompute failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return runErr
}

func startRecomputeLoop(lc fx.Lifecycle, r *recompute.Runner, cfg *config.Config) {
	if !cfg.Recompute.Enabled {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go r.RunForever(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
