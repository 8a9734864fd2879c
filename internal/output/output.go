package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mj1618/macro-cli/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Writer is where results are printed. Tests swap it out.
var Writer io.Writer = os.Stdout

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q: must be json or yaml", s)
}

// OutlineResult is the output of the `outline` command.
type OutlineResult struct {
	File    string               `yaml:"file,omitempty" json:"file,omitempty"`
	Version string               `yaml:"version"        json:"version"`
	Steps   int                  `yaml:"steps"          json:"steps"`
	Entries []model.OutlineEntry `yaml:"entries"        json:"entries"`
}

// DiffResult is the output of the `diff` command.
type DiffResult struct {
	From    string         `yaml:"from"    json:"from"`
	To      string         `yaml:"to"      json:"to"`
	Changes []model.Change `yaml:"changes" json:"changes"`
}

// Print serializes v in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintDocument writes a macro document in the current output format. JSON
// output is always the indented exchange format.
func PrintDocument(doc *model.Document) error {
	var (
		data []byte
		err  error
	)
	switch OutputFormat {
	case FormatJSON:
		data, err = model.Marshal(doc)
	case FormatYAML:
		data, err = DocumentYAML(doc)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
	if err != nil {
		return err
	}
	_, err = Writer.Write(data)
	return err
}
