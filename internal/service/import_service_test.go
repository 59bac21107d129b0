package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importCSV = `Item ID,Name,Category,Unit,Current Stock,Daily Usage,Par Level,Cost Per Unit
croissant_dough,Croissant Dough,Bakery,kg,6,2,30,4.5
coffee_beans_premium,Premium Coffee Beans,Coffee,lbs,40,,,
bad_row,Bad Row,Bakery,kg,lots,1,,
,Missing Id,Bakery,kg,1,1,,
ghost_syrup,Ghost Syrup,Syrups,bottles,NaN,2,,
inf_syrup,Infinite Syrup,Syrups,bottles,3,+Inf,,
`

func TestImportInventoryCSV(t *testing.T) {
	f := newFixture(t)
	before, err := f.inventory.Get(context.Background(), "coffee_beans_premium")
	require.NoError(t, err)

	imports := NewImportService(f.inventory, nil)
	result, err := imports.ImportInventoryCSV(context.Background(), strings.NewReader(importCSV))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Replaced)
	assert.Equal(t, 4, result.Skipped)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "line 4")
	assert.Contains(t, result.Errors[2], "line 6")
	assert.Contains(t, result.Errors[3], "line 7")

	for _, id := range []string{"ghost_syrup", "inf_syrup"} {
		_, err := f.inventory.Get(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}

	created, err := f.inventory.Get(context.Background(), "croissant_dough")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLow, created.Status)
	require.NotNil(t, created.ParLevel)
	assert.Equal(t, 30.0, *created.ParLevel)

	coffee, err := f.inventory.Get(context.Background(), "coffee_beans_premium")
	require.NoError(t, err)
	assert.Equal(t, 40.0, coffee.CurrentStock)
	assert.Equal(t, before.WeatherSensitivity, coffee.WeatherSensitivity)
	assert.Equal(t, before.Supplier, coffee.Supplier)
	assert.Greater(t, f.cache.invalidations, 0)
}

func TestImportInventoryCSVRejectsMissingColumns(t *testing.T) {
	f := newFixture(t)

	_, err := NewImportService(f.inventory, nil).
		ImportInventoryCSV(context.Background(), strings.NewReader("Item ID,Name\nx,X\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportFromStorage(t *testing.T) {
	f := newFixture(t)
	store := &fakeStorage{objects: map[string][]byte{
		"imports/2024/jan.csv":  []byte(importCSV),
		"imports/2024/notes.md": []byte("ignored"),
	}}
	dir := t.TempDir()

	imports := NewImportService(f.inventory, store)
	result, err := imports.ImportFromStorage(context.Background(), "imports", "", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "2024", "jan.csv")}, result.Files)
	assert.Equal(t, 1, result.Created)

	_, err = os.Stat(filepath.Join(dir, "2024", "jan.csv"))
	assert.NoError(t, err)

	result, err = imports.ImportFromStorage(context.Background(), "imports", "2024/jan.csv", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Replaced)

	_, err = imports.ImportFromStorage(context.Background(), "exports", "", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = NewImportService(f.inventory, nil).ImportFromStorage(context.Background(), "imports", "", dir)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestImportFromStorageRejectsEscapingKeys(t *testing.T) {
	f := newFixture(t)
	parent := t.TempDir()
	dir := filepath.Join(parent, "downloads")
	store := &fakeStorage{objects: map[string][]byte{
		"imports/../../escaped.csv": []byte(importCSV),
	}}

	imports := NewImportService(f.inventory, store)
	_, err := imports.ImportFromStorage(context.Background(), "imports", "", dir)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = imports.ImportFromStorage(context.Background(), "imports", "../../escaped.csv", dir)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, statErr := os.Stat(filepath.Join(parent, "escaped.csv"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalObjectPath(t *testing.T) {
	path, err := localObjectPath("/tmp/in", "2024/a.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/in", "2024", "a.csv"), path)

	path, err = localObjectPath("/tmp/in", "2024/../a.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/in", "a.csv"), path)

	for _, rel := range []string{"..", "../a.csv", "2024/../../a.csv", "/etc/passwd"} {
		_, err := localObjectPath("/tmp/in", rel)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, rel)
	}
}

func TestObjectKeyHelpers(t *testing.T) {
	assert.Equal(t, "imports/a.csv", resolveObjectKey("imports/", "/a.csv"))
	assert.Equal(t, "imports/a.csv", resolveObjectKey("imports", "imports/a.csv"))
	assert.Equal(t, "a.csv", resolveObjectKey("", "/a.csv"))

	assert.Equal(t, "2024/a.csv", objectRelativePath("imports", "imports/2024/a.csv"))
	assert.Equal(t, "a.csv", objectRelativePath("", "a.csv"))
	assert.Equal(t, "a.csv", objectRelativePath("other", "elsewhere/a.csv"))
}
