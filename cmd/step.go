package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/edit"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Add, remove, reorder or retype workflow steps",
	Long: `Manage the steps of the workflow. Indexes are 0-based; negative indexes
count from the end (pass them after --, e.g. "step rm -- -1").`,
}

var stepAddCmd = &cobra.Command{
	Use:   "add <kind>",
	Short: "Append a capture, annotate or export step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("add-step", edit.Params{"kind": args[0]})
	},
}

var stepRmCmd = &cobra.Command{
	Use:     "rm <step>",
	Aliases: []string{"remove"},
	Short:   "Remove a step",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("remove-step", edit.Params{"step": args[0]})
	},
}

var stepMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a step to another position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("move-step", edit.Params{"step": args[0], "to": args[1]})
	},
}

var stepKindCmd = &cobra.Command{
	Use:   "kind <step> <kind>",
	Short: "Change a step's kind, resetting it to that kind's defaults",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("change-kind", edit.Params{"step": args[0], "kind": args[1]})
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.AddCommand(stepAddCmd)
	stepCmd.AddCommand(stepRmCmd)
	stepCmd.AddCommand(stepMoveCmd)
	stepCmd.AddCommand(stepKindCmd)
}
