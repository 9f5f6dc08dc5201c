package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/models"
)

// credentialFile persists hashed credential records in a JSON file keyed
// by identity:
//
//	{
//	  "admin": {"salt": "ab12...", "iterations": 200000, "hash": "ef34..."}
//	}
//
// The whole table is rewritten on every creation, mirroring the record
// store's whole-file persistence discipline.
type credentialFile struct {
	path   string
	logger *logger.Logger
}

// NewCredentialFile constructs a [CredentialRepository] backed by the JSON
// file at path. A missing file reads as an empty credential table.
func NewCredentialFile(path string, logger *logger.Logger) CredentialRepository {
	logger.Debug().Str("path", path).Msg("credential repository created")
	return &credentialFile{
		path:   path,
		logger: logger,
	}
}

// Load reads all credential records. A missing file is not an error: the
// store starts empty and the file appears on the first Create.
func (c *credentialFile) Load(ctx context.Context) (map[string]models.HashedCredential, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return map[string]models.HashedCredential{}, nil
	}
	if err != nil {
		c.logger.Err(err).Str("path", c.path).Msg("error reading credential file")
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	credentials := map[string]models.HashedCredential{}
	if err := json.Unmarshal(data, &credentials); err != nil {
		c.logger.Err(err).Str("path", c.path).Msg("error parsing credential file")
		return nil, fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}

	return credentials, nil
}

// Find returns the credential record stored for identity, or
// [ErrCredentialNotFound] when the identity is unknown.
func (c *credentialFile) Find(ctx context.Context, identity string) (models.HashedCredential, error) {
	credentials, err := c.Load(ctx)
	if err != nil {
		return models.HashedCredential{}, err
	}

	credential, ok := credentials[identity]
	if !ok {
		return models.HashedCredential{}, ErrCredentialNotFound
	}

	return credential, nil
}

// Create stores a new credential record and persists the full table.
// An existing identity is rejected with [ErrDuplicateIdentity]; no partial
// state is written in that case.
func (c *credentialFile) Create(ctx context.Context, identity string, credential models.HashedCredential) error {
	credentials, err := c.Load(ctx)
	if err != nil {
		return err
	}

	if _, exists := credentials[identity]; exists {
		return ErrDuplicateIdentity
	}
	credentials[identity] = credential

	data, err := json.MarshalIndent(credentials, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential table: %w", err)
	}

	if err := writeFileAtomic(c.path, data); err != nil {
		c.logger.Err(err).Str("path", c.path).Msg("error writing credential file")
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return nil
}
