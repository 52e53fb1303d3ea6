// ABOUTME: Data migration between mood storage backends.
// ABOUTME: Copies mood entries, journal entries, goals, and preferences from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	MoodEntries    int
	JournalEntries int
	Goals          int
	Preferences    int
}

// MigrateData copies all data from src to dst storage. The destination
// should be empty before calling this function; records keep their IDs.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source data: %w", err)
	}

	if err := ImportInto(dst, data); err != nil {
		return nil, err
	}
	return Summarize(data), nil
}

// Summarize counts the records held in data.
func Summarize(data *ExportData) *MigrateSummary {
	if data == nil {
		return &MigrateSummary{}
	}
	return &MigrateSummary{
		MoodEntries:    len(data.MoodEntries),
		JournalEntries: len(data.JournalEntries),
		Goals:          len(data.Goals),
		Preferences:    len(data.Preferences),
	}
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
