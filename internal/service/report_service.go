package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

const reportContentType = "text/csv"

var inventoryReportHeader = []string{
	"Item ID", "SKU", "Name", "Category", "Supplier", "Unit",
	"Current Stock", "Daily Usage", "Days Left", "Status",
	"Par Level", "Stock Ratio", "Low Stock", "Cost Per Unit", "Stock Value",
}

type ReportService struct {
	inventory *InventoryService
	storage   storage.ObjectStorage
	dataDir   string
	now       func() time.Time
}

// NewReportService creates a report writer. storage may be nil, in which case
// reports are only written to dataDir.
func NewReportService(inventory *InventoryService, objectStorage storage.ObjectStorage, dataDir string) *ReportService {
	if dataDir == "" {
		dataDir = "data"
	}
	return &ReportService{inventory: inventory, storage: objectStorage, dataDir: dataDir, now: time.Now}
}

// InventoryReport writes the classified inventory as CSV and uploads it when
// object storage is configured.
func (s *ReportService) InventoryReport(ctx context.Context) (*domain.ReportResult, error) {
	items, err := s.inventory.Classified(ctx)
	if err != nil {
		return nil, err
	}

	data, err := encodeInventoryCSV(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory report: %w", err)
	}

	generatedAt := s.now().UTC()
	name := fmt.Sprintf("inventory_report_%s.csv", generatedAt.Format("20060102_150405"))
	path := filepath.Join(s.dataDir, name)

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write inventory report: %w", err)
	}

	result := &domain.ReportResult{Path: path, Rows: len(items), GeneratedAt: generatedAt}
	if s.storage != nil {
		key, err := s.storage.UploadObject(ctx, "reports/"+name, data, reportContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload inventory report: %w", err)
		}
		result.ObjectKey = key
	}

	log.Info().
		Str("path", result.Path).
		Str("object_key", result.ObjectKey).
		Int("rows", result.Rows).
		Msg("report: inventory report generated")
	return result, nil
}

func encodeInventoryCSV(items []domain.ClassifiedItem) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(inventoryReportHeader); err != nil {
		return nil, err
	}
	for _, item := range items {
		par := ""
		if item.ParLevel != nil {
			par = formatFloat(*item.ParLevel, 2)
		}
		record := []string{
			item.ItemID,
			item.SKU,
			item.Name,
			item.Category,
			item.Supplier,
			item.Unit,
			formatFloat(item.CurrentStock, 2),
			formatFloat(item.DailyUsage, 2),
			formatFloat(item.DaysLeft, 1),
			string(item.Status),
			par,
			formatFloat(item.StockRatio, 2),
			strconv.FormatBool(item.LowStock),
			formatFloat(item.CostPerUnit, 2),
			formatFloat(item.CurrentStock*item.CostPerUnit, 2),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
