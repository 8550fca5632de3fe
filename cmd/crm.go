package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadforge/prospector-cli/internal/export"
	"github.com/leadforge/prospector-cli/internal/model"
)

var crmCmd = &cobra.Command{
	Use:   "crm",
	Short: "Manage saved prospects",
}

var crmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved prospects",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		prospects, err := st.List(ctx)
		if err != nil {
			return eris.Wrap(err, "list prospects")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(prospects)
	},
}

var crmStatusCmd = &cobra.Command{
	Use:   "status <prospect-id> <new|contacted|signed|ignored>",
	Short: "Update a prospect's pipeline status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		status, ok := model.ParseStatus(args[1])
		if !ok {
			return eris.Errorf("unknown status %q", args[1])
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.UpdateStatus(ctx, args[0], status); err != nil {
			return eris.Wrap(err, "update status")
		}
		zap.L().Info("status updated",
			zap.String("prospect", args[0]),
			zap.String("status", string(status)),
		)
		return nil
	},
}

var crmRemoveCmd = &cobra.Command{
	Use:   "remove <prospect-id>",
	Short: "Remove a prospect",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Remove(ctx, args[0]); err != nil {
			return eris.Wrap(err, "remove prospect")
		}
		zap.L().Info("prospect removed", zap.String("prospect", args[0]))
		return nil
	},
}

var crmExportOut string

var crmExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved prospects to CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		prospects, err := st.List(ctx)
		if err != nil {
			return eris.Wrap(err, "list prospects")
		}

		out := crmExportOut
		if out == "" {
			out = defaultExportPath("crm", "", "csv")
		}
		if err := writeExport(out, export.ProspectRows(prospects)); err != nil {
			return err
		}

		zap.L().Info("prospects exported",
			zap.String("path", out),
			zap.Int("count", len(prospects)),
		)
		return nil
	},
}

func init() {
	crmExportCmd.Flags().StringVar(&crmExportOut, "out", "", "output file (.csv or .xlsx; default generated under export.dir)")
	crmCmd.AddCommand(crmListCmd, crmStatusCmd, crmRemoveCmd, crmExportCmd)
	rootCmd.AddCommand(crmCmd)
}
