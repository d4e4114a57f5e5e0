// Package display formats command results for terminals and for machines.
package display

import "github.com/spf13/cobra"

// ShouldOutputJSON reports whether the --json flag is set on cmd or inherited
// from the root command.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	if jsonFlag, err := cmd.Flags().GetBool("json"); err == nil {
		return jsonFlag
	}
	jsonFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return jsonFlag
}
