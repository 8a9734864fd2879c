package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/model"
	"github.com/mj1618/macro-cli/internal/output"
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "List steps, elements and destinations",
	Long: `Print a flat listing of the document. Each entry carries the indexes the
editing commands take (step, index) and the label the editor shows.

Examples:
  macro-cli outline
  macro-cli outline --kind element --match arrow`,
	Args: cobra.NoArgs,
	RunE: runOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)
	outlineCmd.Flags().StringSlice("kind", nil, "Only these entry kinds: step, element, destination")
	outlineCmd.Flags().String("match", "", "Only entries whose label or detail contains this text")
}

func runOutline(cmd *cobra.Command, args []string) error {
	kindNames, _ := cmd.Flags().GetStringSlice("kind")
	match, _ := cmd.Flags().GetString("match")
	kinds := make([]model.OutlineKind, 0, len(kindNames))
	for _, name := range kindNames {
		k, err := model.ParseOutlineKind(name)
		if err != nil {
			return err
		}
		kinds = append(kinds, k)
	}

	path := docPath()
	doc, err := loadDoc(path)
	if err != nil {
		return err
	}
	return output.Print(output.OutlineResult{
		File:    path,
		Version: doc.Version,
		Steps:   doc.Len(),
		Entries: model.FilterOutline(model.Outline(doc), kinds, match),
	})
}
