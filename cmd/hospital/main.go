package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/internal/cli"
	"github.com/samsalem6/hospital-records/internal/config"
	"github.com/samsalem6/hospital-records/internal/service"
	"github.com/samsalem6/hospital-records/internal/store"
	"github.com/samsalem6/hospital-records/pkg/auth"
	"github.com/samsalem6/hospital-records/pkg/logger"
	"github.com/samsalem6/hospital-records/pkg/metrics"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital",
		Short: "Single-facility hospital records manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Println("unknown")
				return
			}
			fmt.Printf("%s %s\n", cfg.App.Name, cfg.App.Version)
		},
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	collector := metrics.NewCollector("hospital")
	audit := service.NewAuditService(collector, log)
	defer audit.Shutdown()

	gw := store.NewFileStore(cfg.Store.Path, collector, log)
	dir, err := service.NewDirectory(gw, audit, collector, log)
	if err != nil {
		return fmt.Errorf("building directory: %w", err)
	}

	authSvc := service.NewAuthService(cfg.Auth, auth.NewManager(cfg.Auth), log)

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("db_file", cfg.Store.Path),
	)

	menu := cli.NewMenu(dir, authSvc, audit, os.Stdin, os.Stdout, log)
	return menu.Run()
}
