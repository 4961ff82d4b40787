package cmd

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/config"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/validator"
	"github.com/spf13/cobra"
)

var tokenOpts struct {
	EmployeeID string
	Admin      bool
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for an employee or an administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenOpts.EmployeeID == "" && !tokenOpts.Admin {
			return fmt.Errorf("either --employee-id or --admin is required")
		}
		if tokenOpts.EmployeeID != "" && !validator.IsValidUUID(tokenOpts.EmployeeID) {
			return fmt.Errorf("invalid employee id %q", tokenOpts.EmployeeID)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		var employeeID *string
		if tokenOpts.EmployeeID != "" {
			employeeID = &tokenOpts.EmployeeID
		}

		token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
			GenerateAccessToken(employeeID, tokenOpts.Admin)
		if err != nil {
			return fmt.Errorf("failed to mint token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenOpts.EmployeeID, "employee-id", "", "Employee the token acts as")
	tokenCmd.Flags().BoolVar(&tokenOpts.Admin, "admin", false, "Grant administrator privileges")
}
