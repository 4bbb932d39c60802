package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NoArgs rejects positional arguments. The results path is only taken
// from --input.
func NoArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	return fmt.Errorf("%s takes no positional arguments, got %q\n"+
		"Pass the results file or directory with --input, see '%s --help'",
		cmd.CommandPath(), strings.Join(args, " "), cmd.CommandPath())
}
