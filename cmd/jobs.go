package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TattooStudio/internal/infra/storage/schema"
	staffRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/staff"
	authService "github.com/m04kA/SMC-TattooStudio/internal/service/auth"
	dailySummaryUC "github.com/m04kA/SMC-TattooStudio/internal/usecase/daily_summary"
)

const jobTimeout = 30 * time.Second

var summaryFlags struct {
	dryRun  bool
	date    string
	channel string
	to      string
}

var dailySummaryCmd = &cobra.Command{
	Use:   "daily-summary",
	Short: "Build and send the appointment summary for one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		req := &dailySummaryUC.Request{
			Channel: summaryFlags.channel,
			To:      summaryFlags.to,
			DryRun:  summaryFlags.dryRun,
		}
		if summaryFlags.date != "" {
			date, err := time.ParseInLocation(time.DateOnly, summaryFlags.date, a.cfg.Studio.Location())
			if err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", summaryFlags.date)
			}
			req.Date = &date
		}

		useCase := dailySummaryUC.NewUseCase(
			reservationRepo.NewRepository(a.db),
			staffRepo.NewRepository(a.db),
			a.relayClient(),
			a.metrics,
			dailySummaryUC.Settings{
				StudioName:     a.cfg.Studio.Name,
				CurrencySymbol: a.cfg.Studio.Currency,
				DefaultChannel: domain.Channel(a.cfg.Notifications.DefaultChannel),
				Recipients:     a.recipients(),
				Location:       a.cfg.Studio.Location(),
			},
			a.log.With("component", "daily_summary", "mode", "cli"),
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), jobTimeout)
		defer cancel()

		resp, err := useCase.Execute(ctx, req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, resp.Message)
		if resp.Sent {
			fmt.Fprintf(out, "\nsent via %s to %s (message id %s)\n", resp.Channel, resp.To, resp.MessageID)
		}
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), jobTimeout)
		defer cancel()

		if err := schema.Apply(ctx, a.db); err != nil {
			return err
		}
		a.log.Info("Database schema applied")
		return nil
	},
}

var hashPasswordFlags struct {
	password string
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for the staff.password_hash column",
	Long:  "Reads the password from --password or, if omitted, from the first line of stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		password := hashPasswordFlags.password
		if password == "" {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password from stdin: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		hash, err := authService.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage staff accounts",
}

var staffCreateFlags struct {
	email       string
	name        string
	role        string
	permissions []string
	password    string
}

var staffCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account that can sign in to the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		role := domain.StaffRole(strings.ToLower(strings.TrimSpace(staffCreateFlags.role)))
		if !role.IsValid() {
			return fmt.Errorf("unknown role %q", staffCreateFlags.role)
		}
		email := strings.TrimSpace(staffCreateFlags.email)
		name := strings.TrimSpace(staffCreateFlags.name)
		if email == "" || name == "" {
			return errors.New("--email and --name are required")
		}

		hash, err := authService.HashPassword(staffCreateFlags.password)
		if err != nil {
			return err
		}

		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), jobTimeout)
		defer cancel()

		created, err := staffRepo.NewRepository(a.db).Create(ctx, &domain.Staff{
			Email:        email,
			FullName:     name,
			Role:         role,
			Permissions:  staffCreateFlags.permissions,
			PasswordHash: hash,
		})
		if errors.Is(err, staffRepo.ErrEmailTaken) {
			return fmt.Errorf("staff member with email %s already exists", email)
		}
		if err != nil {
			return err
		}

		a.log.Info("Staff member created: id=%s, email=%s, role=%s", created.ID, created.Email, created.Role)
		fmt.Fprintln(cmd.OutOrStdout(), created.ID)
		return nil
	},
}

func init() {
	dailySummaryCmd.Flags().BoolVar(&summaryFlags.dryRun, "dry-run", false, "Print the summary without sending it")
	dailySummaryCmd.Flags().StringVar(&summaryFlags.date, "date", "", "Day to summarize (YYYY-MM-DD), today by default")
	dailySummaryCmd.Flags().StringVar(&summaryFlags.channel, "channel", "", "telegram or whatsapp, the configured default if empty")
	dailySummaryCmd.Flags().StringVar(&summaryFlags.to, "to", "", "Recipient override")

	hashPasswordCmd.Flags().StringVar(&hashPasswordFlags.password, "password", "", "Password to hash")

	staffCreateCmd.Flags().StringVar(&staffCreateFlags.email, "email", "", "Sign-in email")
	staffCreateCmd.Flags().StringVar(&staffCreateFlags.name, "name", "", "Full name")
	staffCreateCmd.Flags().StringVar(&staffCreateFlags.role, "role", string(domain.RoleReception), "admin, manager, artist or reception")
	staffCreateCmd.Flags().StringSliceVar(&staffCreateFlags.permissions, "permissions", nil, "Extra permissions: reservations, staff, economics, emails")
	staffCreateCmd.Flags().StringVar(&staffCreateFlags.password, "password", "", "Initial password")
	_ = staffCreateCmd.MarkFlagRequired("password")

	staffCmd.AddCommand(staffCreateCmd)
}
