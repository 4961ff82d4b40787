package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var sweepOpts struct {
	EmployeeID string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Force-close sessions past their cutoff",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), false, func(ctx context.Context, rt *deps) error {
			closed, err := rt.services.Sweeper.CloseExpired(ctx, sweepOpts.EmployeeID, rt.services.Clock.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d session(s) closed\n", closed)
			return nil
		})
	},
}

var lockCmd = &cobra.Command{
	Use:   "lock <period-id>",
	Short: "Lock a payroll period and freeze its attendance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), false, func(ctx context.Context, rt *deps) error {
			period, err := rt.services.Periods.Lock(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s locked (%s .. %s)\n",
				period.ID, period.Label, period.StartDate, period.EndDate)
			return nil
		})
	},
}

var relockCmd = &cobra.Command{
	Use:   "relock",
	Short: "Re-apply lock flags to attendance in every locked period",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), false, func(ctx context.Context, rt *deps) error {
			touched, err := rt.services.Periods.Relock(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d session(s) locked\n", touched)
			return nil
		})
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepOpts.EmployeeID, "employee-id", "", "Only sweep this employee")
}
