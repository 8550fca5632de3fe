package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadforge/prospector-cli/internal/model"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <prospect-id>",
	Short: "Find a contact email for a saved prospect",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := findProspect(ctx, e, args[0])
		if err != nil {
			return err
		}

		email, found, err := e.Finder.FindEmail(ctx, p.Business)
		if err != nil {
			return eris.Wrap(err, "find email")
		}
		if !found {
			fmt.Println("no public email found")
			return nil
		}

		p.Business.Email = &email
		if err := e.Store.Upsert(ctx, p); err != nil {
			return eris.Wrap(err, "save email")
		}

		zap.L().Info("email found",
			zap.String("prospect", p.ID),
			zap.String("email", email),
		)
		fmt.Println(email)
		return nil
	},
}

func findProspect(ctx context.Context, e *env, id string) (model.Prospect, error) {
	prospects, err := e.Store.List(ctx)
	if err != nil {
		return model.Prospect{}, eris.Wrap(err, "list prospects")
	}
	for _, p := range prospects {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Prospect{}, eris.Errorf("no prospect with id %q", id)
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}
