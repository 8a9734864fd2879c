package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/config"
	"github.com/mj1618/macro-cli/internal/model"
	"github.com/mj1618/macro-cli/internal/output"
)

var diffCmd = &cobra.Command{
	Use:   "diff [old] [new]",
	Short: "Show what changed between two macro documents",
	Long: `Compare two documents entry by entry. With one argument the document is
compared against the current --file; with none, the current --file is
compared against the snapshot taken before the last edit.

Examples:
  macro-cli diff
  macro-cli diff backup.json
  macro-cli diff v1.json v2.json`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	to := docPath()
	var from string
	switch len(args) {
	case 0:
		snap, err := model.LatestSnapshot(config.Instance.Snapshots.Dir, to)
		if err != nil {
			return err
		}
		from = snap
	case 1:
		from = args[0]
	default:
		from, to = args[0], args[1]
	}

	prev, err := loadDoc(from)
	if err != nil {
		return err
	}
	curr, err := loadDoc(to)
	if err != nil {
		return err
	}
	changes, err := model.Diff(prev, curr)
	if err != nil {
		return err
	}
	if changes == nil {
		changes = []model.Change{}
	}
	return output.Print(output.DiffResult{From: from, To: to, Changes: changes})
}
