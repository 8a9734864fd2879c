package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/config"
	"github.com/mj1618/macro-cli/internal/logger"
	"github.com/mj1618/macro-cli/internal/output"
	"github.com/mj1618/macro-cli/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "macro-cli",
	Short: "Build and run screenshot tool macros",
	Long: `A CLI tool for editing macro documents: capture, annotate and export steps
that a screenshot tool replays. Every editing command loads the document,
applies one change and writes it back.`,
	SilenceUsage: true,
}

func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"macro.file": "file",
	"debug":      "debug",
	"log_format": "log-format",
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)

	pf := rootCmd.PersistentFlags()
	pf.StringP("file", "f", "", "Macro document to edit (default: macro.file from config, else macro.json)")
	pf.String("format", "yaml", "Output format: yaml, json")
	pf.Bool("pretty", false, "Pretty-print JSON output")
	pf.String("config", "", "Config file (default: macro-cli.yaml in . or the user config dir)")
	pf.Bool("debug", false, "Enable debug logging")
	pf.String("log-format", "", "Log format: human, json")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		for key, name := range flagKeys {
			if err := config.BindFlag(key, pf.Lookup(name)); err != nil {
				return err
			}
		}
		cfgFile, _ := pf.GetString("config")
		if err := config.Initialize(cfgFile); err != nil {
			return err
		}

		cfg := config.Instance
		if err := logger.InitLogger(logger.LoggerConfig{
			Debug:     cfg.Debug,
			LogFormat: cfg.LogFormat,
			LogFile:   cfg.LogFile,
		}); err != nil {
			return err
		}
		if config.ConfigLoaded {
			logger.LogDebug("loaded config", map[string]interface{}{"file": config.ConfigFile})
		}

		// Use the root persistent flag directly so subcommand flags such as
		// render --format cannot shadow it.
		format, _ := pf.GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = pf.GetBool("pretty")
		return nil
	}
}
