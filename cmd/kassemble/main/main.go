package main

import (
	"os"

	"github.com/arthur-debert/kassemble/cmd/kassemble"
	"github.com/arthur-debert/kassemble/pkg/display"
)

func main() {
	rootCmd := kassemble.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer, rErr := display.NewRenderer(os.Stderr, display.DetectFormat(os.Stderr))
		if rErr == nil {
			_ = renderer.RenderError(err)
		}
		os.Exit(1)
	}
}
