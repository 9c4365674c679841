package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nyumbasmart_backend/internals/configs"
	database "nyumbasmart_backend/internals/databases"
)

func main() {
	_ = godotenv.Load()

	cfg := configs.Load()
	log, err := configs.NewLogger(cfg.LogLevel, "console", "nyumbactl")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cli := &cliApp{
		cfg: cfg,
		log: log,
		openDB: func() (*gorm.DB, error) {
			return database.ConnectDB(cfg, log)
		},
	}

	if err := newRootCmd(cli).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliApp struct {
	cfg    configs.AppConfig
	log    *zap.Logger
	openDB func() (*gorm.DB, error)
}

func newRootCmd(cli *cliApp) *cobra.Command {
	root := &cobra.Command{
		Use:           "nyumbactl",
		Short:         "Rental ledger maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		migrateCmd(cli),
		seedCmd(cli),
		billsCmd(cli),
		landlordsCmd(cli),
	)
	return root
}
