// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/fundwatch/pkg/types"
)

// Build reads every .txt artifact in sourceDir, extracts a funding
// record from each, and tags it with its source filename. Records
// follow directory enumeration order. Zero artifacts yields an empty
// dataset, not an error.
func Build(sourceDir string, w io.Writer) ([]types.FundingRecord, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading artifact directory %s: %w", sourceDir, err)
	}

	var records []types.FundingRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		path := filepath.Join(sourceDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading artifact %s: %w", path, err)
		}

		fmt.Fprintf(w, "[INFO] Extracting from: %s\n", entry.Name())

		record := ExtractFields(string(data))
		record.Filename = entry.Name()
		records = append(records, record)
	}

	return records, nil
}

// WriteCSV writes the dataset to outputPath with a header row. An
// empty dataset is a warning, not an error, and produces no file.
func WriteCSV(records []types.FundingRecord, outputPath string, w io.Writer) error {
	if len(records) == 0 {
		fmt.Fprintf(w, "[WARN] No data to write.\n")
		return nil
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outputPath, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(types.RecordSchema()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, record := range records {
		if err := cw.Write(record.Values()); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	fmt.Fprintf(w, "[SUCCESS] Extracted data written to %s\n", outputPath)
	return nil
}
