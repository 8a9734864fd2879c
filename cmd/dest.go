package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/edit"
)

var destCmd = &cobra.Command{
	Use:   "dest",
	Short: "Edit the destinations of export steps",
}

var destAddCmd = &cobra.Command{
	Use:   "add <step> <file|clipboard> [path]",
	Short: "Append an export destination",
	Long: `Append a destination. File destinations need a path; {timestamp} in the
path is expanded by the screenshot tool at export time.

Examples:
  macro-cli dest add 2 file 'C:\shots\shot_{timestamp}.png'
  macro-cli dest add 2 clipboard`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := edit.Params{"step": args[0], "type": args[1]}
		if len(args) == 3 {
			params["path"] = args[2]
		}
		return applyOp("add-destination", params)
	},
}

var destRmCmd = &cobra.Command{
	Use:     "rm <step> <destination>",
	Aliases: []string{"remove"},
	Short:   "Remove a destination",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("remove-destination", edit.Params{"step": args[0], "destination": args[1]})
	},
}

var destOverwriteCmd = &cobra.Command{
	Use:   "overwrite <step> <destination> <on|off>",
	Short: "Set whether a file destination overwrites existing files",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("set-overwrite", edit.Params{"step": args[0], "destination": args[1], "enabled": args[2]})
	},
}

func init() {
	rootCmd.AddCommand(destCmd)
	destCmd.AddCommand(destAddCmd)
	destCmd.AddCommand(destRmCmd)
	destCmd.AddCommand(destOverwriteCmd)
}
