package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"trellcord/internal/storage"
	"trellcord/internal/storage/factory"
)

// app carries the session state every subcommand shares: the resolved
// configuration and the single backend instance behind the provider.
type app struct {
	log      *slog.Logger
	cfgPath  string
	preset   string
	provider *factory.Provider
}

func newRootCmd(log *slog.Logger) *cobra.Command {
	a := &app{log: log}
	root := &cobra.Command{
		Use:           "trellcord",
		Short:         "Inspect and edit the local board database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "YAML storage config file (overrides --preset)")
	root.PersistentFlags().StringVar(&a.preset, "preset", "development", "environment preset: development, production or test")
	root.AddCommand(newBoardsCmd(a), newArchiveCmd(a), newListsCmd(a), newCardsCmd(a), newResetCmd(a))
	return root
}

func (a *app) setup() error {
	var (
		cfg storage.Config
		err error
	)
	if a.cfgPath != "" {
		cfg, err = factory.LoadConfig(a.cfgPath)
	} else {
		cfg, err = factory.Preset(a.preset)
	}
	if err != nil {
		return err
	}
	a.provider = factory.NewProvider(cfg, a.log)
	return nil
}

func (a *app) store(ctx context.Context) (storage.Service, error) {
	return a.provider.Service(ctx)
}
