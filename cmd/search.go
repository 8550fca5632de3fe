package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadforge/prospector-cli/internal/export"
	"github.com/leadforge/prospector-cli/internal/filter"
	"github.com/leadforge/prospector-cli/internal/model"
	"github.com/leadforge/prospector-cli/internal/scorer"
)

var (
	searchQuery     string
	searchCity      string
	searchMaxRating float64
	searchNoWebsite bool
	searchMinScore  float64
	searchSave      bool
	searchOut       string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search local businesses through the AI provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		results, scores := e.Search.Search(ctx, searchQuery, searchCity)
		results = filter.Apply(results, scores, searchPredicates(cmd))

		if searchSave {
			for _, r := range results {
				insight := scorer.Score(r.Business)
				if err := e.Store.Upsert(ctx, model.NewProspect(r, &insight)); err != nil {
					return eris.Wrap(err, "save prospect")
				}
			}
			zap.L().Info("prospects saved", zap.Int("count", len(results)))
		}

		if searchOut != "" {
			if err := writeExport(searchOut, export.ResultRows(results, scores)); err != nil {
				return err
			}
			zap.L().Info("results exported", zap.String("path", searchOut))
		}

		type line struct {
			model.SearchResult
			Score float64 `json:"local_score"`
		}
		out := make([]line, 0, len(results))
		for _, r := range results {
			out = append(out, line{SearchResult: r, Score: scores[r.SourceID]})
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

// searchPredicates builds filters from only the flags the user actually set,
// so an untouched --max-rating does not silently drop unrated results.
func searchPredicates(cmd *cobra.Command) filter.Predicates {
	var preds filter.Predicates
	if cmd.Flags().Changed("max-rating") {
		preds.MaxRating = &searchMaxRating
	}
	if cmd.Flags().Changed("min-score") {
		preds.MinScore = &searchMinScore
	}
	preds.NoWebsiteOnly = searchNoWebsite
	return preds
}

// writeExport picks the format from the file extension.
func writeExport(path string, rows []export.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "create export file")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return export.WriteXLSX(f, rows)
	default:
		return export.WriteCSV(f, rows)
	}
}

// defaultExportPath builds a path in the configured export directory.
func defaultExportPath(query, city, ext string) string {
	return filepath.Join(cfg.Export.Dir, export.Filename(query, city, ext, time.Now()))
}

func init() {
	searchCmd.Flags().StringVar(&searchQuery, "query", "", "business type to search for (required)")
	searchCmd.Flags().StringVar(&searchCity, "city", "", "city to search in (default from config)")
	searchCmd.Flags().Float64Var(&searchMaxRating, "max-rating", 0, "keep only businesses rated at or below this")
	searchCmd.Flags().BoolVar(&searchNoWebsite, "no-website", false, "keep only businesses without a website")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", 0, "keep only businesses scored at or above this")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "save the filtered results as prospects")
	searchCmd.Flags().StringVar(&searchOut, "out", "", "export the results to this file (.csv or .xlsx)")
	_ = searchCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(searchCmd)
}
