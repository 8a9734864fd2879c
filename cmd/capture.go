package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/edit"
	"github.com/mj1618/macro-cli/internal/model"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Edit capture steps",
	Long:  "Set the source, area, autocrop and options of a capture step.",
}

var captureTypeCmd = &cobra.Command{
	Use:   "type <step> <fullscreen|region|file>",
	Short: "Change the capture type",
	Long: `Change what a capture step grabs. Switching type drops the fields of the
old type and fills the defaults of the new one (region: 0,0 800x600).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("set-capture-type", edit.Params{"step": args[0], "type": args[1]})
	},
}

var captureAreaCmd = &cobra.Command{
	Use:   "area <step> [X=<n>] [Y=<n>] [Width=<n>] [Height=<n>]",
	Short: "Set the area of a region capture",
	Long: `Set one or more area fields of a region capture. All fields are applied
together: if one is invalid nothing is written.

Examples:
  macro-cli capture area 0 Width=1024 Height=768
  macro-cli capture area 0 --bbox 100,50,640,480`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCaptureArea,
}

var capturePathCmd = &cobra.Command{
	Use:   "path <step> <image>",
	Short: "Set the image path of a file capture",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("set-path", edit.Params{"step": args[0], "path": args[1]})
	},
}

var captureAutocropCmd = &cobra.Command{
	Use:   "autocrop <step> <on|off>",
	Short: "Turn autocrop on or off",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("set-autocrop", edit.Params{"step": args[0], "enabled": args[1]})
	},
}

var captureDiffCmd = &cobra.Command{
	Use:   "diff <step> <0-255>",
	Short: "Set the autocrop color difference",
	Long:  "Set the color tolerance autocrop uses to find the border. Autocrop must be on.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("set-autocrop-difference", edit.Params{"step": args[0], "value": args[1]})
	},
}

var captureOptionCmd = &cobra.Command{
	Use:   "option <step> <show_cursor|delay_ms> <value>",
	Short: "Set a capture option",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyOp("set-option", edit.Params{"step": args[0], "key": args[1], "value": args[2]})
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.AddCommand(captureTypeCmd)
	captureCmd.AddCommand(captureAreaCmd)
	captureCmd.AddCommand(capturePathCmd)
	captureCmd.AddCommand(captureAutocropCmd)
	captureCmd.AddCommand(captureDiffCmd)
	captureCmd.AddCommand(captureOptionCmd)

	captureAreaCmd.Flags().String("bbox", "", "Whole area as x,y,w,h")
}

func runCaptureArea(cmd *cobra.Command, args []string) error {
	step := args[0]
	bbox, _ := cmd.Flags().GetString("bbox")

	var fields [][2]string
	if bbox != "" {
		b, err := model.ParseArea(bbox)
		if err != nil {
			return err
		}
		fields = append(fields,
			[2]string{"X", strconv.Itoa(b.X)},
			[2]string{"Y", strconv.Itoa(b.Y)},
			[2]string{"Width", strconv.Itoa(b.Width)},
			[2]string{"Height", strconv.Itoa(b.Height)},
		)
	}
	pairs, err := keyValues(args[1:])
	if err != nil {
		return err
	}
	fields = append(fields, pairs...)
	if len(fields) == 0 {
		return fmt.Errorf("nothing to set: pass key=value pairs or --bbox")
	}

	calls := make([]opCall, 0, len(fields))
	for _, f := range fields {
		calls = append(calls, opCall{name: "set-area", params: edit.Params{"step": step, "key": f[0], "value": f[1]}})
	}
	return applyOps(calls...)
}
