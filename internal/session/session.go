// Package session holds the in-memory state of a search session: the
// current result set, the transient scores travelling alongside it, and the
// bookkeeping that keeps concurrent operations honest — a generation counter
// so a slow stale search cannot clobber a newer one, and an in-flight set so
// the same business is not enriched twice concurrently.
package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/leadforge/prospector-cli/internal/model"
)

// Manager is safe for concurrent use.
type Manager struct {
	mu         sync.Mutex
	generation uint64
	published  uint64

	query   string
	city    string
	results []model.SearchResult
	scores  map[string]float64
	byID    map[string]model.SearchResult

	enriching map[string]struct{}
}

// NewManager creates an empty session.
func NewManager() *Manager {
	return &Manager{
		scores:    map[string]float64{},
		byID:      map[string]model.SearchResult{},
		enriching: map[string]struct{}{},
	}
}

// Begin registers a new search and returns its generation. Results for any
// earlier generation are discarded on publish.
func (m *Manager) Begin(query, city string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	m.query = query
	m.city = city
	return m.generation
}

// Publish installs a completed search's results. Returns false and changes
// nothing when a newer search superseded gen while it was running.
func (m *Manager) Publish(gen uint64, results []model.SearchResult, scores map[string]float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		zap.L().Info("session: discarding stale search results",
			zap.Uint64("generation", gen),
			zap.Uint64("current", m.generation),
			zap.Int("results", len(results)),
		)
		return false
	}

	m.published = gen
	m.results = results
	m.scores = scores
	if m.scores == nil {
		m.scores = map[string]float64{}
	}
	m.byID = make(map[string]model.SearchResult, len(results))
	for _, r := range results {
		m.byID[r.SourceID] = r
	}
	return true
}

// Current returns the latest published result set and its scores. The
// returned slice and map must not be mutated.
func (m *Manager) Current() (query, city string, results []model.SearchResult, scores map[string]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query, m.city, m.results, m.scores
}

// Get looks up a result by session source id.
func (m *Manager) Get(sourceID string) (model.SearchResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[sourceID]
	return r, ok
}

// SetEmail merges a discovered email into the in-memory result.
func (m *Manager) SetEmail(sourceID, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[sourceID]
	if !ok {
		return
	}
	r.Business.Email = &email
	m.byID[sourceID] = r
	for i := range m.results {
		if m.results[i].SourceID == sourceID {
			m.results[i] = r
			break
		}
	}
}

// StartEnrich marks sourceID as being enriched. Returns false when an
// enrichment for it is already in flight.
func (m *Manager) StartEnrich(sourceID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.enriching[sourceID]; busy {
		return false
	}
	m.enriching[sourceID] = struct{}{}
	return true
}

// EndEnrich clears the in-flight mark. Call it on every outcome.
func (m *Manager) EndEnrich(sourceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.enriching, sourceID)
}
