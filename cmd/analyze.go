package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <prospect-id>",
	Short: "Run a deep AI analysis on a saved prospect",
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

		insight, err := e.Analyzer.Analyze(ctx, p.Business)
		if err != nil {
			return eris.Wrap(err, "analyze prospect")
		}

		p.Insight = insight
		if err := e.Store.Upsert(ctx, p); err != nil {
			return eris.Wrap(err, "save analysis")
		}

		zap.L().Info("analysis complete",
			zap.String("prospect", p.ID),
			zap.Float64("score", insight.Score),
			zap.Bool("is_target", insight.IsTarget),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(insight)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
