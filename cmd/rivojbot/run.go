package main

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	corecmd "github.com/jamshidbekman/rivojbot/core/cmd"
	"github.com/jamshidbekman/rivojbot/internal/bot"
	"github.com/jamshidbekman/rivojbot/internal/config"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the bot until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(flags.configPath)
		},
	}
}

func runBot(configPath string) error {
	var (
		cfg *config.Config
		res *infra
		app atomic.Pointer[bot.App]
	)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		for sig := range sigs {
			if a := app.Load(); a != nil {
				a.NoteSignal(sig.String())
			}
		}
	}()

	err := corecmd.Run(corecmd.Options{
		ConfigPath:        configPath,
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: defaultConfigPath,
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			c, err := config.Load(path)
			if err != nil {
				return nil, err
			}
			cfg = c
			return c, nil
		},
		Bootstrap: func(corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			r, err := openInfra(cfg)
			if err != nil {
				return nil, err
			}
			res = r
			a, err := bot.New(bot.Options{Config: cfg, Store: r.store, DB: r.db})
			if err != nil {
				return nil, err
			}
			app.Store(a)
			return a, nil
		},
	})
	if res != nil {
		_ = res.close()
	}
	if err != nil {
		bot.ReportFatal(cfg, err)
	}
	return err
}
