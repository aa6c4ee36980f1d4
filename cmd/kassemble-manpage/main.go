package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/kassemble/cmd/kassemble"
	"github.com/arthur-debert/kassemble/internal/version"
)

func main() {
	rootCmd := kassemble.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "KASSEMBLE",
		Section: "1",
		Source:  "kassemble " + version.Version,
		Manual:  "kassemble manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
