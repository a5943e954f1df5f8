package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiaot623/embeddemo/domain"
	"github.com/xiaot623/embeddemo/embed"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the saved embed configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved configuration",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			printConfig(cmd, a.form.Config())
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change one field and save it",
		Long:  "Change one field and save it. Fields: " + strings.Join(embed.Fields, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			if err := a.form.Set(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("saved"), args[0])
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			a.form.Reset(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("configuration reset"))
			return nil
		}),
	})

	return cmd
}

func printConfig(cmd *cobra.Command, cfg domain.EmbedConfig) {
	rows := [][2]string{
		{"deploymentId", cfg.DeploymentID},
		{"userIdType", string(cfg.UserIDType)},
		{"externalId", cfg.ExternalID},
		{"internalId", cfg.InternalID},
		{"embedType", string(cfg.EmbedType)},
		{"dashboardId", cfg.DashboardID},
		{"userAttributes", cfg.UserAttributes},
		{"embedAfterGeneration", strconv.FormatBool(cfg.EmbedAfterGeneration)},
	}
	out := cmd.OutOrStdout()
	for _, row := range rows {
		fmt.Fprintf(out, "%s%s\n", labelStyle.Render(row[0]), valueStyle.Render(row[1]))
	}
}
