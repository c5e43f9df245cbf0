// Package version exposes the version subcommand, grounded directly on
// cmd/milo/version's shape (flag-selectable output format) minus the
// Kubernetes component-base version struct this module has no use for.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// GitVersion is overridden at build time via -ldflags.
var GitVersion = "dev"

// NewCommand returns the version subcommand.
func NewCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Println(GitVersion)
				return nil
			}
			fmt.Printf("cimrepo version: %s\n", GitVersion)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version string")
	return cmd
}
