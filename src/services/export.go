package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
)

const exportTimestampLayout = "20060102_150405"

func timestampedPath(filePath string, now time.Time) string {
	ext := filepath.Ext(filePath)
	stem := strings.TrimSuffix(filePath, ext)
	return fmt.Sprintf("%s_%s%s", stem, now.Format(exportTimestampLayout), ext)
}

// ExportCSV writes a sweep table to a CSV file. When includeTimestamp is
// set the filename gets a YYYYMMDD_HHMMSS suffix so repeated runs never
// overwrite each other.
func ExportCSV(records []optionmodels.SweepRecord, filePath string, includeTimestamp bool) (string, error) {
	if includeTimestamp {
		filePath = timestampedPath(filePath, time.Now())
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("ExportCSV: failed to create %s: %w", filePath, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return "", fmt.Errorf("ExportCSV: failed to write %s: %w", filePath, err)
	}

	log.Infof("Data exported to: %s", filePath)
	return filePath, nil
}

func ExportJSON(records []optionmodels.SweepRecord, filePath string, includeTimestamp bool) (string, error) {
	if includeTimestamp {
		filePath = timestampedPath(filePath, time.Now())
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("ExportJSON: failed to marshal records: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("ExportJSON: failed to write %s: %w", filePath, err)
	}

	log.Infof("Data exported to JSON: %s", filePath)
	return filePath, nil
}

// CreateExportDirectory builds an organized per-option directory under
// basePath, named {ticker}_{type}_{strike}_{expiration}.
func CreateExportDirectory(basePath string, cfg optionmodels.NormalizedConfig) (string, error) {
	ticker := cfg.Ticker
	if ticker == "" {
		ticker = "UNKNOWN"
	}

	dirName := fmt.Sprintf("%s_%s_%v_%s", ticker, cfg.Params.OptionType, cfg.Params.StrikePrice, cfg.Expiration.Format(optionmodels.ExpirationDateLayout))
	exportDir := filepath.Join(basePath, dirName)

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", fmt.Errorf("CreateExportDirectory: failed to create %s: %w", exportDir, err)
	}

	return exportDir, nil
}

// BulkExport writes every result table in each requested format ("csv",
// "json") and returns the exported file paths keyed by table and format.
func BulkExport(results AnalysisResults, cfg optionmodels.NormalizedConfig, exportDir string, formats []string) (map[string]string, error) {
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return nil, fmt.Errorf("BulkExport: failed to create %s: %w", exportDir, err)
	}

	ticker := cfg.Ticker
	if ticker == "" {
		ticker = "option"
	}

	exported := map[string]string{}

	for name, records := range results.Tables() {
		fileBase := fmt.Sprintf("%s_%s", ticker, name)

		for _, format := range formats {
			switch format {
			case "csv":
				filePath, err := ExportCSV(records, filepath.Join(exportDir, fileBase+".csv"), true)
				if err != nil {
					return nil, fmt.Errorf("BulkExport: %w", err)
				}
				exported[name+"_csv"] = filePath
			case "json":
				filePath, err := ExportJSON(records, filepath.Join(exportDir, fileBase+".json"), true)
				if err != nil {
					return nil, fmt.Errorf("BulkExport: %w", err)
				}
				exported[name+"_json"] = filePath
			default:
				return nil, fmt.Errorf("BulkExport: unsupported format: %s", format)
			}
		}
	}

	return exported, nil
}
