package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/leadforge/prospector-cli/internal/config"
	"github.com/leadforge/prospector-cli/internal/export"
	"github.com/leadforge/prospector-cli/internal/model"
)

func withConfig(t *testing.T, c config.Config) {
	t.Helper()
	prev := cfg
	cfg = &c
	t.Cleanup(func() { cfg = prev })
}

func TestInitStoreFileDriver(t *testing.T) {
	withConfig(t, config.Config{Store: config.StoreConfig{
		Driver: "file",
		Path:   filepath.Join(t.TempDir(), "prospects.json"),
	}})

	st, err := initStore(context.Background())
	require.NoError(t, err)
	defer st.Close()

	prospects, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prospects)
}

func TestInitStoreSQLiteDefault(t *testing.T) {
	withConfig(t, config.Config{Store: config.StoreConfig{
		Path: filepath.Join(t.TempDir(), "prospector.db"),
	}})

	st, err := initStore(context.Background())
	require.NoError(t, err)
	defer st.Close()

	p := model.Prospect{ID: "p1", Business: model.Business{Name: "Boulangerie"}, Status: model.StatusNew}
	require.NoError(t, st.Upsert(context.Background(), p))

	prospects, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, prospects, 1)
}

func TestInitStoreUnknownDriver(t *testing.T) {
	withConfig(t, config.Config{Store: config.StoreConfig{Driver: "redis"}})

	_, err := initStore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestSearchPredicatesOnlyChangedFlags(t *testing.T) {
	preds := searchPredicates(searchCmd)
	assert.Nil(t, preds.MaxRating)
	assert.Nil(t, preds.MinScore)
	assert.False(t, preds.Active())

	require.NoError(t, searchCmd.Flags().Set("max-rating", "4.0"))
	t.Cleanup(func() {
		searchCmd.Flags().Lookup("max-rating").Changed = false
		searchMaxRating = 0
	})

	preds = searchPredicates(searchCmd)
	require.NotNil(t, preds.MaxRating)
	assert.Equal(t, 4.0, *preds.MaxRating)
	assert.True(t, preds.Active())
}

func TestWriteExportFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	rows := []export.Row{{Name: "Boulangerie Dupont", Rating: "3.5", Score: "10"}}

	csvPath := filepath.Join(dir, "out.csv")
	require.NoError(t, writeExport(csvPath, rows))

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, export.Header, records[0])
	assert.Equal(t, "Boulangerie Dupont", records[1][0])

	xlsxPath := filepath.Join(dir, "out.xlsx")
	require.NoError(t, writeExport(xlsxPath, rows))

	wb, err := xlsx.OpenFile(xlsxPath)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 1)
	assert.Equal(t, "Boulangerie Dupont", wb.Sheets[0].Rows[1].Cells[0].String())
}

func TestDefaultExportPath(t *testing.T) {
	withConfig(t, config.Config{Export: config.ExportConfig{Dir: "/tmp/exports"}})

	path := defaultExportPath("Boulangerie", "Lyon", "csv")
	assert.Equal(t, "/tmp/exports", filepath.Dir(path))
	assert.Contains(t, filepath.Base(path), "prospection_boulangerie_lyon_")
}
