package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuditFile_Append_WritesHeaderOnce verifies that the header row is
// written exactly once, on the first append to a new file.
func TestAuditFile_Append_WritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.csv")
	repo := NewAuditFile(path, logger.Nop())

	require.NoError(t, repo.Append(context.Background(), models.NewActionEntry("admin", models.ActionLogin, "")))
	require.NoError(t, repo.Append(context.Background(), models.NewActionEntry("admin", models.ActionAddRecord, "7")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "timestamp,user,action,details", lines[0])
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,user,action,details"))
}

// TestAuditFile_AppendEntries_RoundTrip verifies that appended entries
// read back intact and in order.
func TestAuditFile_AppendEntries_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.csv")
	repo := NewAuditFile(path, logger.Nop())

	first := models.ActionEntry{
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		User:      "admin",
		Action:    models.ActionDelete,
		Details:   "3",
	}
	second := models.ActionEntry{
		Timestamp: time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC),
		User:      "bob",
		Action:    models.ActionLogout,
		Details:   "",
	}

	require.NoError(t, repo.Append(context.Background(), first))
	require.NoError(t, repo.Append(context.Background(), second))

	entries, err := repo.Entries(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}

// TestAuditFile_Entries_MissingFile verifies that a log that was never
// written to reads as empty.
func TestAuditFile_Entries_MissingFile(t *testing.T) {
	repo := NewAuditFile(filepath.Join(t.TempDir(), "actions.csv"), logger.Nop())

	entries, err := repo.Entries(context.Background())

	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestAuditFile_Entries_BadTimestamp verifies that a hand-edited log with
// an unparseable timestamp surfaces ErrMalformedStorage.
func TestAuditFile_Entries_BadTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.csv")
	content := "timestamp,user,action,details\nyesterday,admin,login,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := NewAuditFile(path, logger.Nop())
	_, err := repo.Entries(context.Background())

	require.ErrorIs(t, err, ErrMalformedStorage)
}

// TestAuditFile_Append_DetailsWithComma verifies that free-text details
// survive CSV quoting.
func TestAuditFile_Append_DetailsWithComma(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.csv")
	repo := NewAuditFile(path, logger.Nop())

	entry := models.ActionEntry{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		User:      "admin",
		Action:    models.ActionImport,
		Details:   "devices, march batch.xlsx",
	}
	require.NoError(t, repo.Append(context.Background(), entry))

	entries, err := repo.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "devices, march batch.xlsx", entries[0].Details)
}
