// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

/*
Package cli implements the importctl command line tool.

importctl drives the same import pipeline as the HTTP API, aimed at
operators loading inventory files from a shell or a cron job without going
through the upload endpoint.

Configuration resolution order (viper): explicit flag, then environment
variable with the BOOKSTORE_ prefix (e.g. BOOKSTORE_DATABASE_URL).
*/
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootOptions holds global flags shared by all subcommands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the importctl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "importctl",
		Short:         "Bookstore inventory import tool",
		Long:          "Load bulk CSV inventory files straight into the bookstore database.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Every flag is also settable via BOOKSTORE_<FLAG> in the environment.
	viper.SetEnvPrefix("BOOKSTORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}
