// Package schema has the models shared by all parts of streak.
package schema

import (
	"sort"
	"time"
)

// CommitRecord is a single commit observed by a commit lister.
type CommitRecord struct {
	SHA        string    `json:"sha"`
	Repository string    `json:"repository"`
	Author     string    `json:"author"`
	Date       time.Time `json:"date"`
}

// SortCommitRecords orders records by date, then repository and SHA, so that
// listers produce stable output regardless of fetch order.
func SortCommitRecords(records []CommitRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Repository != b.Repository {
			return a.Repository < b.Repository
		}
		return a.SHA < b.SHA
	})
}
