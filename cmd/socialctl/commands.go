package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/router"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/pkg/logger"
)

// --- Global Command Variables ---
var (
	userIDs    []uint
	targetUser uint
	message    string
	warnReason string
	roleName   string

	cfg *config.Config
	db  *config.DB

	rootCmd = &cobra.Command{
		Use:   "socialctl",
		Short: "Administrative tasks for the social API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			logger.Init(cfg.LogLevel, cfg.Env)
			db, err = config.InitDB(cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if db != nil {
				db.CloseDB()
			}
			logger.Sync()
		},
		SilenceUsage: true,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(db.Postgres, cmd.OutOrStdout())
		},
	}

	announceCmd = &cobra.Command{
		Use:   "announce",
		Short: "Send a system announcement to every user, or to --user ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := router.NewServices(db.Postgres, cfg, nil)
			return runAnnounce(cmd.Context(), svc, message, userIDs, cmd.OutOrStdout())
		},
	}

	warnCmd = &cobra.Command{
		Use:   "warn",
		Short: "Send an account warning to a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := router.NewServices(db.Postgres, cfg, nil)
			return runWarn(cmd.Context(), svc, targetUser, warnReason, cmd.OutOrStdout())
		},
	}

	roleCmd = &cobra.Command{
		Use:   "role",
		Short: "Change a user's role (USER or ADMIN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := router.NewServices(db.Postgres, cfg, nil)
			return runRole(cmd.Context(), svc, targetUser, models.Role(roleName), cmd.OutOrStdout())
		},
	}
)

func init() {
	announceCmd.Flags().StringVarP(&message, "message", "m", "", "announcement text")
	announceCmd.Flags().UintSliceVar(&userIDs, "user", nil, "recipient user ids (default: all users)")
	_ = announceCmd.MarkFlagRequired("message")

	warnCmd.Flags().UintVar(&targetUser, "user", 0, "user id to warn")
	warnCmd.Flags().StringVarP(&warnReason, "reason", "r", "", "reason shown to the user")
	_ = warnCmd.MarkFlagRequired("user")
	_ = warnCmd.MarkFlagRequired("reason")

	roleCmd.Flags().UintVar(&targetUser, "user", 0, "user id")
	roleCmd.Flags().StringVar(&roleName, "role", "", "new role: USER or ADMIN")
	_ = roleCmd.MarkFlagRequired("user")
	_ = roleCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(migrateCmd, announceCmd, warnCmd, roleCmd)
}

// systemActor performs CLI changes. Its zero ID never matches a real user.
var systemActor = services.Actor{Role: models.RoleAdmin}

func runMigrate(pgdb *gorm.DB, out io.Writer) error {
	if err := config.Migrate(pgdb); err != nil {
		return err
	}
	fmt.Fprintln(out, "migration complete")
	return nil
}

func runAnnounce(ctx context.Context, svc *router.Services, text string, ids []uint, out io.Writer) error {
	if text == "" {
		return fmt.Errorf("message must not be empty")
	}
	sent := svc.Admin.SendAnnouncement(ctx, models.AnnouncementRequest{Message: text, UserIDs: ids})
	fmt.Fprintf(out, "announcement delivered to %d users\n", sent)
	return nil
}

func runWarn(ctx context.Context, svc *router.Services, userID uint, reason string, out io.Writer) error {
	if err := svc.Admin.WarnUser(ctx, userID, reason); err != nil {
		return err
	}
	fmt.Fprintf(out, "warning sent to user %d\n", userID)
	return nil
}

func runRole(ctx context.Context, svc *router.Services, userID uint, role models.Role, out io.Writer) error {
	user, err := svc.Admin.UpdateUserRole(ctx, systemActor, userID, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "user %s is now %s\n", user.Username, user.Role)
	return nil
}
