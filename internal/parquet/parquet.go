// Package parquet provides data structures and functions for exporting cached
// commit data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/commitstreak/schema"
	"github.com/parquet-go/parquet-go"
)

// CacheEntry represents one cached commit listing.
// This struct maps to the commit_cache database table, minus the payload.
type CacheEntry struct {
	// CacheKey is the hashed lister identity and time window
	CacheKey string `parquet:"cache_key,snappy"`

	// Version is the cache format version of the payload
	Version int32 `parquet:"version,snappy"`

	// CachedAt is when the listing was fetched (stored as TIMESTAMP with nanosecond precision)
	CachedAt time.Time `parquet:"cached_at,snappy"`

	// CommitCount is the number of commits in the payload
	CommitCount int32 `parquet:"commit_count,snappy"`
}

// Commit represents a single commit decoded from a cached listing.
type Commit struct {
	// CacheKey references the parent cache entry
	CacheKey string `parquet:"cache_key,snappy"`

	SHA        string    `parquet:"sha,snappy"`
	Repository string    `parquet:"repository,snappy"`
	Author     *string   `parquet:"author,optional,snappy"`
	Date       time.Time `parquet:"date,snappy"`
}

// writeParquet writes rows to a new Parquet file at outputPath.
func writeParquet[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the struct tags
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteCacheEntriesParquet writes a slice of CacheEntry structs to a Parquet file.
func WriteCacheEntriesParquet(data []CacheEntry, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCommitsParquet writes a slice of Commit structs to a Parquet file.
func WriteCommitsParquet(data []Commit, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertCacheEntry converts a raw cache row and its decoded records for Parquet export.
func ConvertCacheEntry(entry schema.CacheEntry, records []schema.CommitRecord) (CacheEntry, []Commit) {
	commits := make([]Commit, len(records))
	for i, record := range records {
		var author *string
		if record.Author != "" {
			author = &record.Author
		}
		commits[i] = Commit{
			CacheKey:   entry.Key,
			SHA:        record.SHA,
			Repository: record.Repository,
			Author:     author,
			Date:       record.Date,
		}
	}
	return CacheEntry{
		CacheKey:    entry.Key,
		Version:     int32(entry.Version),
		CachedAt:    time.Unix(entry.Timestamp, 0),
		CommitCount: int32(len(records)),
	}, commits
}
