// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.PBKDF2Iterations <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.App.StatusSet != "cameras" && cfg.App.StatusSet != "tasks" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.Files.RecordsPath == "" ||
		cfg.Storage.Files.CredentialsPath == "" ||
		cfg.Storage.Files.AuditLogPath == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
