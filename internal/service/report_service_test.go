package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	objects map[string][]byte
	uploads map[string][]byte
	types   map[string]string
	err     error
}

func (s *fakeStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []storage.ObjectInfo
	for key, data := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return out, nil
}

func (s *fakeStorage) DownloadObject(ctx context.Context, key, destPath string) error {
	data, ok := s.objects[key]
	if !ok {
		return fmt.Errorf("object %s: %w", key, domain.ErrNotFound)
	}
	return os.WriteFile(destPath, data, 0o644)
}

func (s *fakeStorage) UploadObject(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.uploads == nil {
		s.uploads = map[string][]byte{}
		s.types = map[string]string{}
	}
	s.uploads[key] = data
	s.types[key] = contentType
	return "kopik/" + key, nil
}

func TestInventoryReportWritesCSV(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	reports := NewReportService(f.inventory, nil, dir)
	reports.now = func() time.Time { return testToday }

	result, err := reports.InventoryReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inventory_report_20240120_150000.csv"), result.Path)
	assert.Equal(t, 5, result.Rows)
	assert.Empty(t, result.ObjectKey)

	file, err := os.Open(result.Path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, inventoryReportHeader, rows[0])
	assert.Equal(t, []string{
		"flour_all_purpose", "FLOUR-001", "All-Purpose Flour", "Baking Ingredients", "Local Mill Co", "lbs",
		"15.00", "3.00", "5.0", "low", "40.00", "0.38", "false", "2.50", "37.50",
	}, rows[1])
}

func TestInventoryReportUploads(t *testing.T) {
	f := newFixture(t)
	store := &fakeStorage{}

	reports := NewReportService(f.inventory, store, t.TempDir())
	reports.now = func() time.Time { return testToday }

	result, err := reports.InventoryReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kopik/reports/inventory_report_20240120_150000.csv", result.ObjectKey)
	assert.Equal(t, "text/csv", store.types["reports/inventory_report_20240120_150000.csv"])

	store.err = errors.New("bucket gone")
	_, err = reports.InventoryReport(context.Background())
	assert.Error(t, err)
}
