package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

// Columns an import file must carry. The rest of the report header is optional,
// and derived columns (days left, status, ratio, stock value) are ignored.
var requiredImportColumns = []string{"item id", "name", "category", "current stock"}

// ImportService loads inventory items from CSV files in the inventory report layout.
type ImportService struct {
	inventory *InventoryService
	storage   storage.ObjectStorage
}

func NewImportService(inventory *InventoryService, objectStorage storage.ObjectStorage) *ImportService {
	return &ImportService{inventory: inventory, storage: objectStorage}
}

// ImportInventoryCSV creates each row's item, replacing it when the item id already
// exists. Invalid rows are skipped and reported rather than aborting the file.
func (s *ImportService) ImportInventoryCSV(ctx context.Context, r io.Reader) (*domain.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", domain.ErrInvalidInput, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range requiredImportColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrInvalidInput, name)
		}
	}

	result := &domain.ImportResult{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidInput, line, err)
		}

		item, err := parseImportRow(columns, record)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		if _, err := s.inventory.Create(ctx, item); err == nil {
			result.Created++
			continue
		} else if !errors.Is(err, domain.ErrConflict) {
			if errors.Is(err, domain.ErrInvalidInput) {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
				continue
			}
			return nil, err
		}

		existing, err := s.inventory.Get(ctx, item.ItemID)
		if err != nil {
			return nil, err
		}
		merged := mergeImported(existing.InventoryItem, item, cellPresent(columns, record))
		if _, err := s.inventory.Replace(ctx, merged.ItemID, &merged); err != nil {
			return nil, err
		}
		result.Replaced++
	}
	return result, nil
}

// ImportFromStorage downloads CSV objects under prefix into destDir and imports them
// in key order. A non-empty override names a single object instead of listing.
func (s *ImportService) ImportFromStorage(ctx context.Context, prefix, override, destDir string) (*domain.ImportResult, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", domain.ErrUnavailable)
	}

	paths, err := s.download(ctx, prefix, override, destDir)
	if err != nil {
		return nil, err
	}

	total := &domain.ImportResult{}
	for _, path := range paths {
		result, err := s.importFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", path, err)
		}
		result.Files = []string{path}
		total.Add(*result)

		log.Info().
			Str("file", path).
			Int("created", result.Created).
			Int("replaced", result.Replaced).
			Int("skipped", result.Skipped).
			Msg("import: inventory file loaded")
	}
	return total, nil
}

func (s *ImportService) importFile(ctx context.Context, path string) (*domain.ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return s.ImportInventoryCSV(ctx, file)
}

func (s *ImportService) download(ctx context.Context, prefix, override, destDir string) ([]string, error) {
	var keys []string

	if override != "" {
		keys = []string{resolveObjectKey(prefix, override)}
	} else {
		listPrefix := strings.TrimSpace(prefix)
		objects, err := s.storage.ListObjects(ctx, listPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects for prefix %s: %w", listPrefix, err)
		}
		for _, obj := range objects {
			if strings.HasSuffix(strings.ToLower(obj.Key), ".csv") {
				keys = append(keys, obj.Key)
			}
		}
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no CSV files found for prefix %s", domain.ErrNotFound, prefix)
	}

	localPaths := make([]string, 0, len(keys))
	for _, key := range keys {
		localPath, err := localObjectPath(destDir, objectRelativePath(prefix, key))
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to prepare directory for %s: %w", localPath, err)
		}
		if err := s.storage.DownloadObject(ctx, key, localPath); err != nil {
			return nil, err
		}
		localPaths = append(localPaths, localPath)
	}

	sort.Strings(localPaths)
	return localPaths, nil
}

func parseImportRow(columns map[string]int, record []string) (*domain.InventoryItem, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	item := &domain.InventoryItem{
		ItemID:   field("item id"),
		SKU:      field("sku"),
		Name:     field("name"),
		Category: field("category"),
		Supplier: field("supplier"),
		Unit:     field("unit"),
	}

	var err error
	if item.CurrentStock, err = parseNumber("current stock", field("current stock")); err != nil {
		return nil, err
	}
	if item.DailyUsage, err = parseNumber("daily usage", field("daily usage")); err != nil {
		return nil, err
	}
	if item.CostPerUnit, err = parseNumber("cost per unit", field("cost per unit")); err != nil {
		return nil, err
	}
	if item.ParLevel, err = parseOptionalNumber("par level", field("par level")); err != nil {
		return nil, err
	}
	if item.ReorderPoint, err = parseOptionalNumber("reorder point", field("reorder point")); err != nil {
		return nil, err
	}
	return item, nil
}

func cellPresent(columns map[string]int, record []string) func(string) bool {
	return func(name string) bool {
		i, ok := columns[name]
		return ok && i < len(record) && strings.TrimSpace(record[i]) != ""
	}
}

// mergeImported overlays the non-empty cells of a row onto the stored item so
// fields the CSV layout does not carry survive a re-import.
func mergeImported(existing domain.InventoryItem, item *domain.InventoryItem, has func(string) bool) domain.InventoryItem {
	merged := existing
	if has("name") {
		merged.Name = item.Name
	}
	if has("category") {
		merged.Category = item.Category
	}
	if has("current stock") {
		merged.CurrentStock = item.CurrentStock
	}
	if has("sku") {
		merged.SKU = item.SKU
	}
	if has("supplier") {
		merged.Supplier = item.Supplier
	}
	if has("unit") {
		merged.Unit = item.Unit
	}
	if has("daily usage") {
		merged.DailyUsage = item.DailyUsage
	}
	if has("cost per unit") {
		merged.CostPerUnit = item.CostPerUnit
	}
	if has("par level") {
		merged.ParLevel = item.ParLevel
	}
	if has("reorder point") {
		merged.ReorderPoint = item.ReorderPoint
	}
	return merged
}

func parseNumber(name, raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !domain.Finite(v) {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func parseOptionalNumber(name, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := parseNumber(name, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func resolveObjectKey(prefix, override string) string {
	if prefix == "" {
		return strings.TrimPrefix(override, "/")
	}

	prefixTrimmed := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	overrideTrimmed := strings.TrimPrefix(strings.TrimSpace(override), "/")

	if strings.HasPrefix(overrideTrimmed, prefixTrimmed) {
		return overrideTrimmed
	}
	return prefixTrimmed + "/" + overrideTrimmed
}

func objectRelativePath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	prefixTrimmed := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	rel := strings.TrimPrefix(key, prefixTrimmed+"/")
	if rel == "" || rel == key {
		return filepath.Base(key)
	}
	return rel
}

// localObjectPath joins rel under destDir, rejecting keys that would land outside it.
func localObjectPath(destDir, rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: object key %q escapes the download directory", domain.ErrInvalidInput, rel)
	}
	return filepath.Join(destDir, cleaned), nil
}
