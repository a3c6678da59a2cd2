package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/studyplan/config"
	"github.com/kilianp07/studyplan/core/scheduler"
	"github.com/kilianp07/studyplan/pkg/export"
)

var (
	genInput      string
	genFormat     string
	genPositional bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a plan from a subjects file and print it",
	Long: `Generate reads {subjects, settings, start_date} from a YAML or JSON file
and writes the plan to stdout without touching the store. Settings missing
from the file and the day layout come from the schedule section of the
configuration.`,
	RunE: generate,
}

func init() {
	generateCmd.Flags().StringVarP(&genInput, "input", "i", "", "input file (.yaml, .yml or .json)")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", export.FormatJSON, "output format: json or csv")
	generateCmd.Flags().BoolVar(&genPositional, "positional-ids", false, `name sessions "{day}-{slot}" instead of random ids`)
	_ = generateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(generateCmd)
}

func generate(cmd *cobra.Command, _ []string) error {
	in, err := scheduler.LoadInput(genInput)
	if err != nil {
		return fmt.Errorf("read %s: %w", genInput, err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	s := cfg.Schedule.Scheduler()
	if genPositional {
		s.NewID = scheduler.PositionalIDs
	}
	settings, err := in.Validate(s.StartHour(), cfg.Schedule.Settings())
	if err != nil {
		return err
	}
	start := in.StartDate
	if start.IsZero() {
		start = today()
	}
	plan, err := s.Generate(in.Subjects, settings, start)
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), genFormat, plan)
}
