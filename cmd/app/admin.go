package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"orderflow/cmd"
	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/filestorage"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/templaterepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := cmd.LoadConfig()
			if err != nil {
				return err
			}
			db, err := postgres.Open(cfg.DSN())
			if err != nil {
				return err
			}
			if err := postgres.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func templateCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "template",
		Short: "Manage order templates",
	}

	root.AddCommand(&cobra.Command{
		Use:   "import <file.json>",
		Short: "Create or replace a template from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := cmd.LoadConfig()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var dto templaterepo.TemplateDTO
			if err := json.Unmarshal(raw, &dto); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			if dto.ID == uuid.Nil {
				dto.ID = uuid.New()
			}
			terms, err := dto.Terms()
			if err != nil {
				return err
			}
			id, err := kernel.UUIDFromBytes(dto.ID[:])
			if err != nil {
				return err
			}
			importCmd, err := commands.NewImportTemplateCommand(id, terms)
			if err != nil {
				return err
			}

			db, err := postgres.Open(cfg.DSN())
			if err != nil {
				return err
			}
			storage, err := filestorage.NewLocal(cfg.StorageDir, cfg.StorageBaseURL)
			if err != nil {
				return err
			}
			app := cmd.NewCompositionRoot(cfg, db, storage, logger.New(cfg.Env, cfg.LogLevel))
			if err := app.CreateImportTemplateCommandHandler().Handle(c.Context(), importCmd); err != nil {
				return err
			}

			fmt.Fprintln(c.OutOrStdout(), id.String())
			return nil
		},
	})
	return root
}

func tokenCmd() *cobra.Command {
	var (
		user string
		role string
		ttl  time.Duration
	)

	c := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for local testing",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := cmd.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is required")
			}

			userID, err := kernel.UUIDFromString(user)
			if err != nil {
				return err
			}
			r, err := kernel.ParseRole(role)
			if err != nil {
				return err
			}
			actor, err := kernel.NewActor(userID, r)
			if err != nil {
				return err
			}

			token, err := httpin.NewTokenParser(cfg.JWTSecret).Issue(actor, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), token)
			return nil
		},
	}
	c.Flags().StringVar(&user, "user", "", "user UUID")
	c.Flags().StringVar(&role, "role", string(kernel.RoleClient), "client, provider or admin")
	c.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = c.MarkFlagRequired("user")
	return c
}
