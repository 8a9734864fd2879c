package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/logger"
	"github.com/mj1618/macro-cli/internal/model"
	"github.com/mj1618/macro-cli/internal/output"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty macro document",
	Long: `Write an empty macro document ({"version": "1.0", "workflow": []}) to the
file selected with --file.

Examples:
  macro-cli new
  macro-cli -f login.json new --force`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().Bool("force", false, "Overwrite an existing document")
}

func runNew(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := docPath()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	// A replaced document is kept as a snapshot; an unreadable one is not.
	var prev *model.Document
	if doc, existed, err := loadOrNew(path); err == nil && existed {
		prev = doc
	}
	if err := saveWithSnapshot(path, prev, model.New()); err != nil {
		return err
	}
	logger.LogInfo("created macro", map[string]interface{}{"file": path})
	return output.Print(EditResult{OK: true, Op: "new", File: path})
}
