package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"textsaver/internal/config"
	"textsaver/internal/saver"
)

func newCheckCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and the save directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			fmt.Printf("save directory:  %s\n", cfg.SaveDir)
			fmt.Printf("max text size:   %d bytes\n", cfg.MaxTextSize)
			fmt.Printf("log level:       %s\n", cfg.LogLevel)

			if err := cfg.Validate(); err != nil {
				fmt.Println(color.RedString("✗ %v", err))
				return err
			}

			// Same canonicalization the server will perform at startup.
			sv, err := saver.New(saver.Config{BaseDir: cfg.SaveDir, MaxTextSize: cfg.MaxTextSize})
			if err != nil {
				fmt.Println(color.RedString("✗ %v", err))
				return err
			}

			fmt.Println(color.GreenString("✓ save directory %s is writable", sv.BaseDir()))
			return nil
		},
	}
}
