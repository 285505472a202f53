package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/models"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/repository"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/services"
	"github.com/spf13/cobra"
)

// ProgramReport lists the rules one stored program violates.
type ProgramReport struct {
	ID       string
	Name     string
	Messages []string
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-run program validation over every stored program",
		Long: `Open the store and check each stored program against the creation rules.

Updates are merged without validation, so stored programs can drift out of
the rules over time. verify exits non-zero when any program fails.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, cmd)
		},
	}

	return cmd
}

func runVerify(opts *RootOptions, cmd *cobra.Command) error {
	db, err := openStore(opts)
	if err != nil {
		return err
	}

	programs, err := repository.NewGymProgramRepository(db).List(cmd.Context())
	if err != nil {
		return err
	}

	reports := verifyPrograms(programs)
	writeReports(cmd.OutOrStdout(), len(programs), reports)

	if len(reports) > 0 {
		return fmt.Errorf("%d of %d programs failed validation", len(reports), len(programs))
	}
	return nil
}

func verifyPrograms(programs []models.GymProgram) []ProgramReport {
	nameCounts := make(map[string]int, len(programs))
	for _, p := range programs {
		nameCounts[strings.ToLower(p.Name)]++
	}
	// A name is only a duplicate when some other program also holds it.
	nameTaken := func(name string) bool {
		return nameCounts[strings.ToLower(name)] > 1
	}

	var reports []ProgramReport
	for _, p := range programs {
		reps := p.Reps
		active := p.IsActive
		messages := services.ValidateProgram(services.ProgramFields{
			Name:           p.Name,
			FocusBodyPart:  p.FocusBodyPart,
			Intensity:      p.Intensity,
			Difficulty:     p.Difficulty,
			TargetAudience: p.TargetAudience,
			Reps:           &reps,
			IsActive:       &active,
		}, nameTaken)
		if len(messages) > 0 {
			reports = append(reports, ProgramReport{ID: p.ID, Name: p.Name, Messages: messages})
		}
	}
	return reports
}

func writeReports(w io.Writer, checked int, reports []ProgramReport) {
	for _, r := range reports {
		fmt.Fprintf(w, "✗ %s (%s)\n", r.ID, r.Name)
		for _, msg := range r.Messages {
			fmt.Fprintf(w, "    - %s\n", msg)
		}
	}
	if len(reports) == 0 {
		fmt.Fprintf(w, "✓ All %d programs valid\n", checked)
		return
	}
	fmt.Fprintf(w, "%d of %d programs invalid\n", len(reports), checked)
}
