// Command cimrepo is demonstration tooling over the cimrepo library: it
// carries no wire transport of its own and exists for interactive
// inspection and smoke-testing (see internal/responder for the
// programmatic surface this CLI merely calls into).
package main

import (
	"os"

	"github.com/spf13/cobra"

	"go.datum.net/cimrepo/cmd/cimrepo/demo"
	"go.datum.net/cimrepo/cmd/cimrepo/serve"
	"go.datum.net/cimrepo/cmd/cimrepo/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cimrepo",
		Short: "cimrepo is an in-process CIM/WBEM object repository and operation responder.",
	}

	rootCmd.AddCommand(serve.NewCommand())
	rootCmd.AddCommand(demo.NewCommand())
	rootCmd.AddCommand(version.NewCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
