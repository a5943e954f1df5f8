package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xiaot623/embeddemo/domain"
	"github.com/xiaot623/embeddemo/embed"
	"github.com/xiaot623/embeddemo/relayclient"
)

// formFlags maps generate flags to form fields.
var formFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"deployment-id", "deploymentId", "Deployment ID"},
	{"user-id-type", "userIdType", "Identity type: external or internal"},
	{"external-id", "externalId", "External user ID"},
	{"internal-id", "internalId", "Internal user email"},
	{"embed-type", "embedType", "Embed type: chat, dashboard or app"},
	{"dashboard-id", "dashboardId", "Dashboard ID (dashboard embeds)"},
	{"user-attributes", "userAttributes", `User attributes as a JSON array, e.g. [{"name":"city","value":"Paris"}]`},
}

type renderOptions struct {
	html       bool
	checkFrame bool
}

func newGenerateCmd(a *app) *cobra.Command {
	var opts renderOptions
	var embedAfter bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Validate the form and generate a new embed session",
		Long: `Apply any field flags (each one is saved), validate the whole form and
request a new session through the relay.`,
		Args: cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			for _, f := range formFlags {
				if !cmd.Flags().Changed(f.flag) {
					continue
				}
				value, _ := cmd.Flags().GetString(f.flag)
				if err := a.form.Set(ctx, f.field, value); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("embed") {
				if err := a.form.Set(ctx, "embedAfterGeneration", strconv.FormatBool(embedAfter)); err != nil {
					return err
				}
			}

			g := a.generator()
			st, err := g.Submit(ctx, a.form.Config())
			return a.render(ctx, cmd.OutOrStdout(), g, st, err, opts)
		}),
	}

	for _, f := range formFlags {
		cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().BoolVar(&embedAfter, "embed", true, "Mount the embed as an iframe after generation")
	addRenderFlags(cmd, &opts)

	return cmd
}

func newRefreshCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Generate a fresh session from the saved values",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			g := a.generator()
			st, err := g.Refresh(cmd.Context(), a.form.Config())
			return a.render(cmd.Context(), cmd.OutOrStdout(), g, st, err, opts)
		}),
	}
	addRenderFlags(cmd, &opts)

	return cmd
}

func addRenderFlags(cmd *cobra.Command, opts *renderOptions) {
	cmd.Flags().BoolVar(&opts.html, "html", false, "Print the iframe markup when the embed is mounted")
	cmd.Flags().BoolVar(&opts.checkFrame, "check-frame", false, "Load the mounted embed once and report load failures")
}

func (a *app) generator() *embed.Generator {
	client := relayclient.NewClient(a.cfg.RelayURL, a.cfg.Timeout())
	return embed.NewGenerator(client, a.cfg.EmbedBaseURL, nil)
}

func (a *app) render(ctx context.Context, out io.Writer, g *embed.Generator, st domain.RenderState, genErr error, opts renderOptions) error {
	if genErr != nil {
		return fmt.Errorf("%s %s", errorStyle.Render("session failed:"), st.Message)
	}

	fmt.Fprintf(out, "%s %s\n", successStyle.Render("session ready"), urlStyle.Render(st.URL))

	if st.Frame == nil {
		return nil
	}

	if opts.checkFrame {
		client := &http.Client{Timeout: a.cfg.Timeout()}
		if err := embed.CheckFrame(ctx, client, st.Frame.Src); err != nil {
			log.Printf("WARN: embed frame failed to load: %v", err)
			g.Renderer().FrameFailed(err.Error())
		} else {
			g.Renderer().FrameLoaded()
		}
		st = g.Renderer().State()
	}

	if st.Frame.LoadError != "" {
		fmt.Fprintln(out, bannerStyle.Render("Failed to load embed: "+st.Frame.LoadError))
	}

	if opts.html {
		html, err := embed.FrameHTML(st.Frame)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, html)
	}

	return nil
}
