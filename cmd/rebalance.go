package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/studyplan/app"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/pkg/export"
)

var (
	rebalanceUser   string
	rebalanceFormat string
)

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Rebalance the stored plan of a user, or of every user with --all",
	RunE:  rebalancePlan,
}

func init() {
	rebalanceCmd.Flags().StringVarP(&rebalanceUser, "user", "u", "", "user id")
	rebalanceCmd.Flags().Bool("all", false, "rebalance every stored plan")
	rebalanceCmd.Flags().StringVarP(&rebalanceFormat, "format", "f", export.FormatJSON, "output format: json or csv")
	rootCmd.AddCommand(rebalanceCmd)
}

func rebalancePlan(cmd *cobra.Command, _ []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if !all && rebalanceUser == "" {
		return fmt.Errorf("either --user or --all is required")
	}
	ctx, stop := signalContext()
	defer stop()
	return withService(ctx, func(svc *app.Service) error {
		if all {
			n, err := svc.RebalanceAll(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "rebalanced %d plans\n", n)
			return err
		}
		plan, err := svc.Rebalance(ctx, rebalanceUser)
		if err != nil {
			return err
		}
		return export.Write(cmd.OutOrStdout(), rebalanceFormat, plan)
	})
}

func today() model.Date { return model.DateOf(time.Now()) }
