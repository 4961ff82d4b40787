package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var seedOpts struct {
	Employees int
}

var positions = []string{"Staff", "Cashier", "Barista", "Supervisor", "Warehouse Operator"}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert fake active employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedOpts.Employees <= 0 {
			return fmt.Errorf("--employees must be positive")
		}
		gofakeit.Seed(time.Now().UnixNano())

		return withRuntime(cmd.Context(), true, func(ctx context.Context, rt *deps) error {
			for i := 0; i < seedOpts.Employees; i++ {
				emp, err := rt.store.Employees.Create(ctx, fakeEmployee())
				if err != nil {
					return fmt.Errorf("failed to seed employee: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					emp.ID, emp.Name, emp.Position, emp.MonthlySalary.StringFixed(0))
			}
			return nil
		})
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedOpts.Employees, "employees", "n", 10, "Number of employees to create")
}

func fakeEmployee() employee.Employee {
	// Salaries in steps of 50,000 between 3,000,000 and 12,000,000.
	salary := int64(gofakeit.Number(60, 240)) * 50_000
	return employee.Employee{
		Name:            gofakeit.Name(),
		Position:        positions[gofakeit.Number(0, len(positions)-1)],
		MonthlySalary:   decimal.NewFromInt(salary),
		WorkHoursPerDay: decimal.NewFromInt(int64(gofakeit.Number(6, 8))),
		Status:          employee.StatusActive,
	}
}
