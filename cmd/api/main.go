package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shop",
	Short: "Shop service: user accounts and owner-scoped products",
	Long: `Shop service exposes signup/signin with JWT bearer tokens and
per-user product CRUD over HTTP. Usage:

	shop serve
	shop migrate up
`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
