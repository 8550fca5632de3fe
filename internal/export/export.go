// Package export writes the current result set to CSV or XLSX for use in
// external outreach tools.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/leadforge/prospector-cli/internal/model"
)

// Header is the fixed export column order.
var Header = []string{"Name", "Address", "Email", "Phone", "Website", "Rating", "Score"}

// Row is one exportable business line. Rating and Score are empty strings
// when unknown.
type Row struct {
	Name    string
	Address string
	Email   string
	Phone   string
	Website string
	Rating  string
	Score   string
}

func (r Row) fields() []string {
	return []string{r.Name, r.Address, r.Email, r.Phone, r.Website, r.Rating, r.Score}
}

// ResultRows builds rows from a search result set and its transient score
// map, preserving order.
func ResultRows(results []model.SearchResult, scores map[string]float64) []Row {
	rows := make([]Row, 0, len(results))
	for _, res := range results {
		row := businessRow(res.Business)
		if score, ok := scores[res.SourceID]; ok {
			row.Score = formatScore(score)
		}
		rows = append(rows, row)
	}
	return rows
}

// ProspectRows builds rows from saved CRM prospects.
func ProspectRows(prospects []model.Prospect) []Row {
	rows := make([]Row, 0, len(prospects))
	for _, p := range prospects {
		row := businessRow(p.Business)
		if p.Insight != nil {
			row.Score = formatScore(p.Insight.Canonical().Score)
		}
		rows = append(rows, row)
	}
	return rows
}

func businessRow(b model.Business) Row {
	row := Row{Name: b.Name}
	if b.Address != nil {
		row.Address = *b.Address
	}
	if b.Email != nil {
		row.Email = *b.Email
	}
	if b.Phone != nil {
		row.Phone = *b.Phone
	}
	if b.Website != nil {
		row.Website = *b.Website
	}
	if b.Rating != nil {
		row.Rating = fmt.Sprintf("%.1f", *b.Rating)
	}
	return row
}

func formatScore(s float64) string {
	return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.1f", s), "0"), ".")
}

// Filename builds an export file name embedding the query and locality,
// e.g. "prospection_boulangerie_lyon_2026-09-01.csv".
func Filename(query, city, ext string, now time.Time) string {
	return fmt.Sprintf("prospection_%s_%s_%s.%s",
		sanitize(query), sanitize(city), now.Format("2006-01-02"), ext)
}

func sanitize(s string) string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if len(parts) == 0 {
		return "export"
	}
	return strings.Join(parts, "-")
}
