// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredential() models.HashedCredential {
	return models.HashedCredential{
		Salt:       "ab12cd34",
		Iterations: 200000,
		Hash:       "ef5678",
	}
}

// TestCredentialFile_Load_MissingFile verifies that a store with no backing
// file yet reads as an empty credential table, not an error.
func TestCredentialFile_Load_MissingFile(t *testing.T) {
	repo := NewCredentialFile(filepath.Join(t.TempDir(), "credentials.json"), logger.Nop())

	credentials, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, credentials)
}

// TestCredentialFile_CreateAndFind verifies the create/find round trip.
func TestCredentialFile_CreateAndFind(t *testing.T) {
	repo := NewCredentialFile(filepath.Join(t.TempDir(), "credentials.json"), logger.Nop())
	want := testCredential()

	require.NoError(t, repo.Create(context.Background(), "alice", want))

	got, err := repo.Find(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// TestCredentialFile_Find_Unknown verifies that an unknown identity maps to
// ErrCredentialNotFound.
func TestCredentialFile_Find_Unknown(t *testing.T) {
	repo := NewCredentialFile(filepath.Join(t.TempDir(), "credentials.json"), logger.Nop())

	_, err := repo.Find(context.Background(), "nobody")

	require.ErrorIs(t, err, ErrCredentialNotFound)
}

// TestCredentialFile_Create_Duplicate verifies that an existing identity is
// rejected with ErrDuplicateIdentity and the stored record is untouched.
func TestCredentialFile_Create_Duplicate(t *testing.T) {
	repo := NewCredentialFile(filepath.Join(t.TempDir(), "credentials.json"), logger.Nop())
	original := testCredential()

	require.NoError(t, repo.Create(context.Background(), "alice", original))

	err := repo.Create(context.Background(), "alice", models.HashedCredential{Salt: "other", Iterations: 1, Hash: "other"})
	require.ErrorIs(t, err, ErrDuplicateIdentity)

	got, err := repo.Find(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

// TestCredentialFile_Load_Malformed verifies that unparseable JSON maps to
// ErrMalformedStorage.
func TestCredentialFile_Load_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewCredentialFile(path, logger.Nop())
	_, err := repo.Load(context.Background())

	require.ErrorIs(t, err, ErrMalformedStorage)
}

// TestCredentialFile_Create_MultipleIdentities verifies that earlier
// records survive later creations.
func TestCredentialFile_Create_MultipleIdentities(t *testing.T) {
	repo := NewCredentialFile(filepath.Join(t.TempDir(), "credentials.json"), logger.Nop())

	require.NoError(t, repo.Create(context.Background(), "admin", testCredential()))
	require.NoError(t, repo.Create(context.Background(), "bob", testCredential()))

	credentials, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, credentials, 2)
	assert.Contains(t, credentials, "admin")
	assert.Contains(t, credentials, "bob")
}
