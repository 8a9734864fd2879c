package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/edit"
)

var elementCmd = &cobra.Command{
	Use:   "element",
	Short: "Edit the elements of annotate steps",
	Long: `Add, remove and change rectangle, arrow, text and obfuscate elements.

Geometry keys: bounds.x, bounds.y, bounds.w, bounds.h (rectangle, obfuscate),
from.x, from.y, to.x, to.y (arrow), position.x, position.y (text).
Style keys: line_color, fill_color, line_thickness, font_size, shadow,
pixel_size, blur_radius.`,
}

var elementAddCmd = &cobra.Command{
	Use:   "add <step> <rectangle|arrow|text|obfuscate>",
	Short: "Append an element with default geometry and style",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("add-element", edit.Params{"step": args[0], "type": args[1]})
	},
}

var elementRmCmd = &cobra.Command{
	Use:     "rm <step> <element>",
	Aliases: []string{"remove"},
	Short:   "Remove an element",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("remove-element", edit.Params{"step": args[0], "element": args[1]})
	},
}

var elementGeomCmd = &cobra.Command{
	Use:   "geom <step> <element> <key>=<n>...",
	Short: "Set element coordinates",
	Long: `Set one or more coordinates. All values are applied together.

Example:
  macro-cli element geom 1 0 bounds.x=10 bounds.y=10 bounds.w=200 bounds.h=100`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runElementPairs("set-geometry", args)
	},
}

var elementTextCmd = &cobra.Command{
	Use:   "text <step> <element> <text>",
	Short: "Set the content of a text element",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("set-content", edit.Params{"step": args[0], "element": args[1], "text": args[2]})
	},
}

var elementStyleCmd = &cobra.Command{
	Use:   "style <step> <element> <key>=<value>...",
	Short: "Set element style properties",
	Long: `Set one or more style properties. All values are applied together.

Example:
  macro-cli element style 1 0 line_color=#00FF00 line_thickness=3 shadow=false`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runElementPairs("set-style", args)
	},
}

func init() {
	rootCmd.AddCommand(elementCmd)
	elementCmd.AddCommand(elementAddCmd)
	elementCmd.AddCommand(elementRmCmd)
	elementCmd.AddCommand(elementGeomCmd)
	elementCmd.AddCommand(elementTextCmd)
	elementCmd.AddCommand(elementStyleCmd)
}

// runElementPairs applies one op per key=value argument to a single element.
func runElementPairs(op string, args []string) error {
	pairs, err := keyValues(args[2:])
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("nothing to set: pass key=value pairs")
	}
	calls := make([]opCall, 0, len(pairs))
	for _, p := range pairs {
		calls = append(calls, opCall{name: op, params: edit.Params{
			"step":    args[0],
			"element": args[1],
			"key":     p[0],
			"value":   p[1],
		}})
	}
	return applyOps(calls...)
}
