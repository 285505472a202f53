package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/database"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	File    string
	Verbose bool
}

// NewRootCommand creates the root command for storectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "storectl",
		Short: "Inspect the gym programs JSON store",
		Long:  "Offline tooling for the JSON document that backs the gym programs API.",
		// main prints the returned error once.
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "database.json", "path to the store file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log store activity to stderr")

	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// openStore opens an existing store file. Unlike the server, a missing file
// is an error here so a typo in --file never creates an empty store.
func openStore(opts *RootOptions) (*database.JSONDatabase, error) {
	if _, err := os.Stat(opts.File); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store file %s does not exist", opts.File)
		}
		return nil, fmt.Errorf("stat %s: %w", opts.File, err)
	}

	log := zap.NewNop()
	if opts.Verbose {
		built, err := logger.New("debug", "console")
		if err != nil {
			return nil, err
		}
		log = built
	}

	return database.Open(opts.File, log)
}
