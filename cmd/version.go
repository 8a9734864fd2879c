package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/output"
	"github.com/mj1618/macro-cli/internal/version"
)

// VersionResult is the output of the `version` command.
type VersionResult struct {
	Version   string `yaml:"version"    json:"version"`
	Commit    string `yaml:"commit"     json:"commit"`
	BuildDate string `yaml:"build_date" json:"build_date"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(VersionResult{
			Version:   version.Version,
			Commit:    version.Commit,
			BuildDate: version.BuildDate,
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
