package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the macro document",
	Long: `Print the whole document. With --format json the output is the exact
exchange format the screenshot tool reads; YAML keeps the same key order.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(docPath())
	if err != nil {
		return err
	}
	return output.PrintDocument(doc)
}
