// Package serve exposes a placeholder serve subcommand, grounded on
// cmd/milo/apiserver's NewCommand() shape but deliberately inert: wire
// transport is out of scope for this repository (see spec §1), so the
// command only confirms the library can be constructed and exits.
package serve

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.datum.net/cimrepo/internal/responder"
)

// NewCommand returns the serve subcommand.
func NewCommand() *cobra.Command {
	var host string
	var disablePull bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Construct a responder and report readiness (no wire transport is implemented)",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := responder.New(host, disablePull)
			if err := r.Namespaces().Add("root/cimv2"); err != nil {
				return err
			}
			fmt.Println("cimrepo responder constructed; no network listener is started by this command")
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "localhost", "host identity filled into returned instance paths")
	cmd.Flags().BoolVar(&disablePull, "disable-pull-operations", false, "fail all Open/Pull/Close operations with CIM_ERR_NOT_SUPPORTED")
	return cmd
}
