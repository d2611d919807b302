package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"textsaver/internal/config"
	"textsaver/internal/mcp"
	"textsaver/internal/saver"
	"textsaver/internal/tools"
	"textsaver/internal/tools/builtin"
	"textsaver/internal/utils"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Runs the JSON-RPC 2.0 request loop on stdin/stdout until the client
closes stdin or the process receives SIGINT/SIGTERM. All logging goes
to stderr and ~/.textsaver/textsaver.log; stdout carries only protocol
frames.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := utils.GetLogger()
			logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

			if term.IsTerminal(int(os.Stdin.Fd())) {
				fmt.Fprintln(os.Stderr, color.YellowString(
					"warning: stdin is a terminal; this server speaks JSON-RPC over stdio and is normally launched by an MCP client"))
			}

			sv, err := saver.New(saver.Config{
				BaseDir:     cfg.SaveDir,
				MaxTextSize: cfg.MaxTextSize,
			})
			if err != nil {
				return err
			}

			registry := tools.NewRegistry()
			if err := registry.Register(builtin.NewSaveText(sv)); err != nil {
				return err
			}

			logger.Info("starting %s v%s, save dir %s, max text size %d bytes",
				serverName, version, sv.BaseDir(), sv.MaxTextSize())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := mcp.NewServer(serverName, version, registry)
			return server.Serve(ctx, os.Stdin, os.Stdout)
		},
	}
}
