package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/database"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ValidExportFormats defines the allowed export encodings.
var ValidExportFormats = []string{"yaml", "json"}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Dump the store document as YAML or JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, format, cmd)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml|json)")

	return cmd
}

func runExport(opts *RootOptions, format string, cmd *cobra.Command) error {
	if format != "yaml" && format != "json" {
		return fmt.Errorf("invalid format %q: must be one of %v", format, ValidExportFormats)
	}

	db, err := openStore(opts)
	if err != nil {
		return err
	}

	var exportErr error
	db.View(func(doc *database.Document) {
		exportErr = encodeDocument(cmd.OutOrStdout(), format, doc)
	})
	return exportErr
}

func encodeDocument(w io.Writer, format string, doc *database.Document) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
}
