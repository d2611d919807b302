package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0"

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
