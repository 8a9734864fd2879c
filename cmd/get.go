package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/mj1618/macro-cli/internal/model"
	"github.com/mj1618/macro-cli/internal/output"
)

// GetResult is the output of the `get` command.
type GetResult struct {
	Path  string      `yaml:"path"  json:"path"`
	Value interface{} `yaml:"value" json:"value"`
}

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Query a value from the macro document",
	Long: `Query the serialized document with a gjson path.

Examples:
  macro-cli get workflow.#
  macro-cli get workflow.0.area.Width
  macro-cli get 'workflow.1.elements.#.type'
  macro-cli get 'workflow.#(type=="export").destinations'`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(docPath())
	if err != nil {
		return err
	}
	data, err := model.Marshal(doc)
	if err != nil {
		return err
	}

	result := gjson.GetBytes(data, args[0])
	if !result.Exists() {
		return fmt.Errorf("no value at %q", args[0])
	}
	return output.Print(GetResult{Path: args[0], Value: result.Value()})
}
