package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/internal/store"
	"github.com/MKhiriev/repair-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuditService_RecordAndEntries verifies that recorded actions read
// back oldest first with a fresh UTC timestamp.
func TestAuditService_RecordAndEntries(t *testing.T) {
	repo := store.NewAuditFile(filepath.Join(t.TempDir(), "actions.csv"), logger.Nop())
	svc := NewAuditService(repo, logger.Nop())

	before := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, svc.Record(context.Background(), "admin", models.ActionLogin, ""))
	require.NoError(t, svc.Record(context.Background(), "admin", models.ActionAddRecord, "7"))
	after := time.Now().UTC().Add(time.Second)

	entries, err := svc.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, models.ActionLogin, entries[0].Action)
	assert.Equal(t, models.ActionAddRecord, entries[1].Action)
	assert.Equal(t, "7", entries[1].Details)
	assert.Equal(t, "admin", entries[0].User)

	for _, entry := range entries {
		assert.False(t, entry.Timestamp.Before(before))
		assert.False(t, entry.Timestamp.After(after))
	}
}
