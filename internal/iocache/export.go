package iocache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/parquet"
	"github.com/huangsam/commitstreak/schema"
)

// ExecuteCacheExport performs the actual export of cached commits to Parquet files.
func ExecuteCacheExport(w io.Writer, store contract.CacheStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("cache store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get cache status: %w", err)
	}
	if status.TotalEntries == 0 {
		return errors.New("no cached commits found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total cache entries: %d\n", status.TotalEntries)

	entries, err := store.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}

	var entryRows []parquet.CacheEntry
	var commitRows []parquet.Commit
	for _, entry := range entries {
		var records []schema.CommitRecord
		if err := json.Unmarshal(entry.Value, &records); err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping unreadable cache entry %s", entry.Key), err)
			continue
		}
		row, commits := parquet.ConvertCacheEntry(entry, records)
		entryRows = append(entryRows, row)
		commitRows = append(commitRows, commits...)
	}

	entriesFile := outputFile + ".cache_entries.parquet"
	if err := parquet.WriteCacheEntriesParquet(entryRows, entriesFile); err != nil {
		return fmt.Errorf("failed to write cache entries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d cache entries to: %s\n", len(entryRows), entriesFile)

	commitsFile := outputFile + ".commits.parquet"
	if err := parquet.WriteCommitsParquet(commitRows, commitsFile); err != nil {
		return fmt.Errorf("failed to write commits: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d commit records to: %s\n", len(commitRows), commitsFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with:")
	_, _ = fmt.Fprintln(w, "  - Apache Spark")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - DuckDB")

	return nil
}
