package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/jamshidbekman/rivojbot/core/bootstrap"
	"github.com/jamshidbekman/rivojbot/core/buildinfo"
	corecmd "github.com/jamshidbekman/rivojbot/core/cmd"
	coredatabase "github.com/jamshidbekman/rivojbot/core/database"
	"github.com/jamshidbekman/rivojbot/internal/config"
	"github.com/jamshidbekman/rivojbot/internal/lead"
)

const defaultConfigPath = "config.yaml"

type rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:           "rivojbot",
		Short:         "Rivoj lead-generation Telegram bot",
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(flags.configPath)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "",
		"path to the YAML config (default $CONFIG_PATH or "+defaultConfigPath+")")

	rootCmd.AddCommand(
		newRunCmd(flags),
		newStatsCmd(flags),
		newExportCmd(flags),
	)
	return rootCmd
}

// infra is what the bot and the offline commands share.
type infra struct {
	store lead.Store
	// db is nil for the file driver.
	db *sqlx.DB
}

func (i *infra) close() error {
	if i.db == nil {
		return nil
	}
	return i.db.Close()
}

// openInfra initializes logging and, for the postgres driver, connects
// and migrates before opening the lead store.
func openInfra(cfg *config.Config) (*infra, error) {
	var dbCfg *coredatabase.Config
	if cfg.UsesPostgres() {
		d := cfg.Database
		dbCfg = &d
	}
	res, err := bootstrap.Run(bootstrap.Options{Config: cfg.CoreConfig(), Database: dbCfg})
	if err != nil {
		return nil, err
	}
	if res.DB != nil {
		return &infra{store: lead.NewPGStore(res.DB), db: res.DB}, nil
	}
	store, err := lead.OpenFileStore(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open lead file: %w", err)
	}
	return &infra{store: store}, nil
}

func loadConfig(path string) (*config.Config, error) {
	return config.Load(corecmd.ResolveConfigPath(corecmd.Options{
		ConfigPath:        path,
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: defaultConfigPath,
	}))
}
