package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/config"
	"github.com/mj1618/macro-cli/internal/logger"
	"github.com/mj1618/macro-cli/internal/output"
	"github.com/mj1618/macro-cli/internal/platform"
)

// RunResult is the output of the `run` command.
type RunResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`

	platform.RunResult `yaml:",inline"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Hand the macro to the screenshot tool",
	Long: `Write the document to a temporary macro file and start the screenshot
tool with "<exe> /macro <file>". The tool is located from --exe,
launcher.executable in config, or the usual install locations.

Examples:
  macro-cli run
  macro-cli run --exe 'C:\Program Files\Greenshot\Greenshot.exe' --wait`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("exe", "", "Screenshot tool executable (default: launcher.executable from config)")
	runCmd.Flags().String("flag", "", "Switch that passes the macro file (default: launcher.flag from config, /macro)")
	runCmd.Flags().Bool("wait", false, "Wait for the tool to exit")
	runCmd.Flags().Bool("keep", false, "Keep the macro file after a waited run")
}

// newRunner builds a Runner from config, with flag overrides.
func newRunner(cmd *cobra.Command) *platform.Runner {
	cfg := config.Instance.Launcher
	opts := platform.RunOptions{
		Executable:  cfg.Executable,
		Flag:        cfg.Flag,
		TempDir:     cfg.TempDir,
		SearchPaths: cfg.SearchPaths,
	}
	wait := cfg.Wait
	if cmd != nil {
		if exe, _ := cmd.Flags().GetString("exe"); exe != "" {
			opts.Executable = exe
		}
		if flag, _ := cmd.Flags().GetString("flag"); flag != "" {
			opts.Flag = flag
		}
		if cmd.Flags().Changed("wait") {
			wait, _ = cmd.Flags().GetBool("wait")
		}
		opts.Keep, _ = cmd.Flags().GetBool("keep")
	}

	provider := platform.NewProvider()
	provider.Launcher = &platform.ExecLauncher{Wait: wait}
	return platform.NewRunner(provider, opts)
}

func runRun(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(docPath())
	if err != nil {
		return err
	}

	res, err := newRunner(cmd).Run(cmd.Context(), doc)
	if err != nil {
		return err
	}
	logger.LogInfo("launched macro", map[string]interface{}{"executable": res.Executable, "file": res.MacroFile})
	return output.Print(RunResult{OK: true, Action: "run", RunResult: *res})
}
