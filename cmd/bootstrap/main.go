// Package main 初始化脚本：建表并创建演示账户
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"story-engine/internal/config"
	"story-engine/internal/wire"
	apperrors "story-engine/pkg/errors"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "bootstrap",
		Short: "Migrate the schema and create the demo account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), true, demoFlags{})
		},
	}
	root.AddCommand(migrateCmd())
	root.AddCommand(demoCmd())
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type demoFlags struct {
	username string
	email    string
	password string
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), false, demoFlags{})
		},
	}
}

func demoCmd() *cobra.Command {
	var flags demoFlags
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Migrate and create the demo account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), true, flags)
		},
	}
	cmd.Flags().StringVar(&flags.username, "username", "", "Demo username (overrides bootstrap.demo_username)")
	cmd.Flags().StringVar(&flags.email, "email", "", "Demo email (overrides bootstrap.demo_email)")
	cmd.Flags().StringVar(&flags.password, "password", "", "Demo password (overrides bootstrap.demo_password)")
	return cmd
}

func run(ctx context.Context, withDemo bool, flags demoFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	deps, cleanup, err := wire.InitializeBootstrap(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing data layer: %w", err)
	}
	defer cleanup()

	// 与 auto_migrate 配置无关，始终执行
	if err := deps.Database.AutoMigrate(ctx); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	fmt.Printf("Schema migrated (%s).\n", deps.Database.Driver())

	if !withDemo {
		return nil
	}

	demo := cfg.Bootstrap
	if flags.username != "" {
		demo.DemoUsername = flags.username
	}
	if flags.email != "" {
		demo.DemoEmail = flags.email
	}
	if flags.password != "" {
		demo.DemoPassword = flags.password
	}
	if demo.DemoUsername == "" {
		fmt.Println("No demo account configured, skipping.")
		return nil
	}

	_, err = deps.Accounts.Register(ctx, demo.DemoUsername, demo.DemoEmail, demo.DemoPassword)
	switch {
	case err == nil:
		fmt.Printf("Demo account %s created.\n", demo.DemoUsername)
	case apperrors.HasCode(err, apperrors.CodeConflict):
		fmt.Printf("Demo account %s already exists.\n", demo.DemoUsername)
	default:
		return fmt.Errorf("creating demo account: %w", err)
	}
	return nil
}
