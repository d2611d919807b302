package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"textsaver/internal/config"
)

// serverName is the MCP server identity reported in the initialize
// handshake.
const serverName = "text-saver"

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:   "textsaver",
		Short: "MCP server that saves text to files in a fixed directory",
		Long: `textsaver is a Model Context Protocol server exposing a single
save_text tool over stdio. It validates and sanitizes filenames,
enforces a payload size limit, and writes text files into one
configured save directory — never anywhere else.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("dir", "", "save directory (default: working directory)")
	flags.Int64("max-size", 0, "maximum text size in bytes (default: 10 MiB)")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	bindFlag(v, "save_dir", rootCmd, "dir")
	bindFlag(v, "max_text_size", rootCmd, "max-size")
	bindFlag(v, "log_level", rootCmd, "log-level")

	rootCmd.AddCommand(newServeCommand(v))
	rootCmd.AddCommand(newCheckCommand(v))

	return rootCmd
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}
