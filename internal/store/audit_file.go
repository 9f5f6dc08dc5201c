package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/models"
)

// auditColumns is the fixed column schema of the action log CSV.
var auditColumns = []string{"timestamp", "user", "action", "details"}

// auditFile persists the append-only action log as a CSV file. Entries are
// only ever appended; the file is never rewritten or pruned.
type auditFile struct {
	path   string
	logger *logger.Logger
}

// NewAuditFile constructs an [AuditRepository] backed by the CSV file at
// path. The file and its header row are created on the first append.
func NewAuditFile(path string, logger *logger.Logger) AuditRepository {
	logger.Debug().Str("path", path).Msg("audit repository created")
	return &auditFile{
		path:   path,
		logger: logger,
	}
}

// Append writes one entry to the end of the action log. The header row is
// written first when the file is new or empty.
func (a *auditFile) Append(ctx context.Context, entry models.ActionEntry) error {
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	file, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		a.logger.Err(err).Str("path", a.path).Msg("error opening audit log")
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(auditColumns); err != nil {
			return fmt.Errorf("write audit header: %w", err)
		}
	}

	record := []string{
		entry.Timestamp.UTC().Format(time.RFC3339),
		entry.User,
		entry.Action,
		entry.Details,
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return nil
}

// Entries reads the whole action log back. A missing file reads as an
// empty log. Intended for inspection and tests; the application itself
// only appends.
func (a *auditFile) Entries(ctx context.Context) ([]models.ActionEntry, error) {
	data, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	table, err := DecodeCSV(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}

	entries := make([]models.ActionEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		ts, err := time.Parse(time.RFC3339, row["timestamp"])
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q", ErrMalformedStorage, row["timestamp"])
		}
		entries = append(entries, models.ActionEntry{
			Timestamp: ts,
			User:      row["user"],
			Action:    row["action"],
			Details:   row["details"],
		})
	}

	return entries, nil
}
