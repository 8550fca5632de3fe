// Package search is the AI search adapter: it fans the same query out as
// several prompt framings, repairs and parses the semi-structured responses,
// merges them with name-based deduplication, and optionally grounds the
// survivors against the Places API. It fails open: any provider or parse
// error degrades to fewer (or zero) results, never an error to the caller.
package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leadforge/prospector-cli/internal/ai"
	"github.com/leadforge/prospector-cli/internal/config"
	"github.com/leadforge/prospector-cli/internal/model"
	"github.com/leadforge/prospector-cli/internal/scorer"
	"github.com/leadforge/prospector-cli/pkg/places"
)

// Service runs multi-strategy business searches.
type Service struct {
	gen     ai.Generator
	places  places.Client // nil disables grounding backfill
	cfg     config.SearchConfig
	timeout time.Duration
}

// New creates a search Service. placesClient may be nil when no maps key is
// configured.
func New(gen ai.Generator, placesClient places.Client, cfg config.SearchConfig) *Service {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Service{gen: gen, places: placesClient, cfg: cfg, timeout: timeout}
}

// Search issues every strategy prompt concurrently and merges the results.
// The returned map carries the transient heuristic score per source id; it
// travels alongside the results rather than inside them so the canonical
// SearchResult shape stays clean.
func (s *Service) Search(ctx context.Context, query, city string) ([]model.SearchResult, map[string]float64) {
	if city == "" {
		city = s.cfg.DefaultCity
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	grounded := s.gen.Supports(ai.CapabilityMapsGrounding)

	batches := make([][]wireBusiness, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, st := range strategies {
		g.Go(func() error {
			items, err := s.runStrategy(gctx, st, query, city, grounded)
			if err != nil {
				// One failed framing must not sink the others.
				zap.L().Warn("search: strategy failed",
					zap.String("strategy", st.name),
					zap.String("query", query),
					zap.Error(err),
				)
				return nil
			}
			batches[i] = items
			return nil
		})
	}
	_ = g.Wait()

	merged := merge(batches)
	results := make([]model.SearchResult, 0, len(merged))
	scores := make(map[string]float64, len(merged))
	for _, it := range merged {
		r := toResult(uuid.New().String(), it)
		if r.Location == nil || r.Business.PlaceID == nil {
			s.ground(ctx, &r, city)
		}
		results = append(results, r)
		scores[r.SourceID] = scorer.Score(r.Business).Score
	}

	zap.L().Info("search: complete",
		zap.String("query", query),
		zap.String("city", city),
		zap.Int("results", len(results)),
		zap.Bool("grounded", grounded),
	)
	return results, scores
}

func (s *Service) runStrategy(ctx context.Context, st strategy, query, city string, grounded bool) ([]wireBusiness, error) {
	prompt := buildPrompt(st, query, city, grounded, s.cfg.MinResults)

	resp, err := s.gen.Generate(ctx, ai.Request{
		Prompt:    prompt,
		Grounding: grounded,
	})
	if err != nil {
		return nil, err
	}
	resp.Usage.LogCost(resp.Model, "search/"+st.name)

	return parseResults(resp.Text)
}

// ground backfills coordinates, place id, and rating count from the Places
// API. Backfill failures are logged and ignored; the result simply keeps
// whatever the AI produced.
func (s *Service) ground(ctx context.Context, r *model.SearchResult, city string) {
	if s.places == nil {
		return
	}

	addr := ""
	if r.Business.Address != nil {
		addr = *r.Business.Address
	}
	resp, err := s.places.TextSearch(ctx, buildGroundQuery(r.Business.Name, addr, city))
	if err != nil {
		zap.L().Debug("search: places backfill failed",
			zap.String("name", r.Business.Name),
			zap.Error(err),
		)
		return
	}
	if len(resp.Places) == 0 {
		return
	}

	p := resp.Places[0]
	if r.Location == nil && p.Location != nil {
		r.Location = &model.Location{Lat: p.Location.Latitude, Lng: p.Location.Longitude}
	}
	if p.ID != "" {
		r.Business.PlaceID = &p.ID
	}
	if p.UserRatingCount > 0 {
		r.Business.UserRatingCount = &p.UserRatingCount
	}
	if r.Business.Address == nil && p.FormattedAddress != "" {
		r.Business.Address = &p.FormattedAddress
	}
	if r.Business.Website == nil && p.WebsiteURI != "" {
		r.Business.Website = &p.WebsiteURI
	}
	if r.Business.Phone == nil && p.NationalPhone != "" {
		r.Business.Phone = &p.NationalPhone
	}
	if r.Business.Rating == nil && p.Rating > 0 {
		r.Business.Rating = &p.Rating
	}
}
