package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/config"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUser     string
	tokenEmployee string
	tokenAdmin    bool
	tokenTTL      time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token signed with the configured secret",
	Long: `token issues an access token for local testing and integrations.
Employee tokens can punch and read their own attendance; --admin tokens
can manage justifications and read reports.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User ID (default: a new UUID)")
	tokenCmd.Flags().StringVar(&tokenEmployee, "employee", "", "Employee ID bound to the token")
	tokenCmd.Flags().BoolVar(&tokenAdmin, "admin", false, "Grant admin privilege")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default: JWT_ACCESS_EXPIRATION_TIME)")
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenEmployee == "" && !tokenAdmin {
		return fmt.Errorf("either --employee or --admin is required")
	}
	if tokenEmployee != "" {
		if _, err := uuid.Parse(tokenEmployee); err != nil {
			return fmt.Errorf("invalid --employee: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ttl := cfg.JWT.AccessExpiration
	if tokenTTL > 0 {
		ttl = tokenTTL
	}
	userID := tokenUser
	if userID == "" {
		userID = uuid.NewString()
	}

	var employeeID *string
	if tokenEmployee != "" {
		employeeID = &tokenEmployee
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, ttl).GenerateAccessToken(userID, employeeID, tokenAdmin)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	return nil
}
