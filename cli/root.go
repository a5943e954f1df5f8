package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xiaot623/embeddemo/config"
	"github.com/xiaot623/embeddemo/embed"
	"github.com/xiaot623/embeddemo/store"
)

var version = "dev"

// app is the state shared by all commands for one invocation.
type app struct {
	configPath string
	cfg        *config.ClientConfig
	store      *store.SQLiteStore
	form       *embed.Form
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{})
}

func newRootCmdFor(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "embedctl",
		Short: "Generate signed embed sessions through the relay",
		Long: `embedctl fills in the signed-embed form, requests a session from the
relay and prints the resulting embed URL (and iframe markup when enabled).

Every field change is saved locally and restored on the next run.

Quick Start:
  embedctl config set deploymentId 32
  embedctl generate --external-id user-42
  embedctl refresh`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultClientConfigPath(), "Path to the CLI config file")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newRefreshCmd(a))

	return root
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.LoadClient(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	db, err := store.NewSQLiteStore(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open local storage: %w", err)
	}
	a.store = db

	form, err := embed.LoadForm(cmd.Context(), db)
	if err != nil {
		db.Close()
		a.store = nil
		return err
	}
	a.form = form
	return nil
}

// withStore wraps a RunE so the store opened in PersistentPreRunE is
// closed on every exit path. PersistentPostRunE is skipped on errors.
func (a *app) withStore(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if closeErr := a.close(); err == nil {
				err = closeErr
			}
		}()
		return run(cmd, args)
	}
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
