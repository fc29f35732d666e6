package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"prunkit/internal/config"
	"prunkit/internal/db"
	"prunkit/internal/fio"
	"prunkit/internal/logger"
	"prunkit/internal/registry"
)

// app carries the wired-up dependencies every subcommand shares.
type app struct {
	cfg   *config.Config
	reg   *registry.Registry
	store *db.DB

	configPath string
	exchange   string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "prun",
		Short:         "Prosperous Universe player-economy toolkit",
		Long:          "prun analyzes game data from the community FIO service:\nmarkets, planets, production chains and base planning.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.store != nil {
				a.store.CleanupOldHistory()
				a.store.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "prunkit.yaml", "config file")
	root.PersistentFlags().StringVarP(&a.exchange, "exchange", "x", "", "exchange code (overrides the preferred one)")

	root.AddCommand(
		newPlanetsCmd(a),
		newManufactureCmd(a),
		newCraftCmd(a),
		newTradeCmd(a),
		newJumpsCmd(a),
		newHousingCmd(a),
		newBaseCmd(a),
		newQueueCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		logger.Error("CFG", err.Error())
		return err
	}
	a.cfg = cfg
	os.MkdirAll(cfg.DataDir, 0755)
	os.MkdirAll(cfg.CacheDir, 0755)

	logger.Banner(version)
	client := fio.NewClient(cfg)
	if !client.Authenticated() {
		logger.Warn("FIO", "no API key; personal data endpoints unavailable")
	}
	a.reg = registry.New(client, cfg)

	store, err := db.Open(filepath.Join(cfg.DataDir, "prunkit.db"))
	if err != nil {
		// History queries degrade to uncached fetches.
		logger.Warn("DB", err.Error())
	} else {
		a.store = store
		a.reg.UseDB(store)
	}
	return nil
}

// exchangeCode resolves the working exchange: the -x flag, then the persisted
// preference (prompting on first use), then the configured default.
func (a *app) exchangeCode() (string, error) {
	if a.exchange != "" {
		return strings.ToUpper(a.exchange), nil
	}
	code, err := a.reg.PreferredExchange()
	if err != nil {
		return "", err
	}
	if code == "" {
		return a.cfg.DefaultExchange, nil
	}
	return code, nil
}

// fail logs a command error and returns it so main exits non-zero.
func fail(tag string, err error) error {
	logger.Error(tag, err.Error())
	return err
}

func printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}
