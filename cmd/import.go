package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/studyplan/app"
	"github.com/kilianp07/studyplan/infra/importer"
)

var importUser string

var importCmd = &cobra.Command{
	Use:   "import FILE.xlsx",
	Short: "Import subjects from a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  importSubjects,
}

func init() {
	importCmd.Flags().StringVarP(&importUser, "user", "u", "", "user id")
	_ = importCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(importCmd)
}

func importSubjects(cmd *cobra.Command, args []string) error {
	subjects, err := importer.ReadFile(args[0])
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()
	return withService(ctx, func(svc *app.Service) error {
		out, err := svc.ImportSubjects(ctx, importUser, subjects)
		if err != nil {
			return err
		}
		for _, s := range out {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tpriority %d\tdue %s\t%.2fh\n", s.ID, s.Name, s.Priority, s.Deadline, s.EstimatedHours)
		}
		return nil
	})
}
