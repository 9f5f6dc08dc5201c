// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Default values applied to any configuration field left unset by every
// other source.
const (
	DefaultHTTPAddress      = "localhost:8080"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultTokenDuration    = 12 * time.Hour
	DefaultTokenIssuer      = "repair-desk"
	DefaultPBKDF2Iterations = 200000
	DefaultRecordsPath      = "data/devices.csv"
	DefaultCredentialsPath  = "data/credentials.json"
	DefaultAuditLogPath     = "data/actions.csv"
	DefaultStatusSet        = "cameras"
)

// StructuredConfig is the top-level configuration container for the
// repair-desk application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters,
	// the credential hashing cost, and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the paths of the flat-file persistence backends:
	// the device record CSV, the credential file, and the action log.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT session
	// tokens. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// It identifies the service that issued the token and is validated on
	// every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// PBKDF2Iterations is the iteration count used when deriving
	// credential hashes with PBKDF2-HMAC-SHA256.
	// Env: APP_PBKDF2_ITERATIONS
	PBKDF2Iterations int `env:"PBKDF2_ITERATIONS"`

	// StatusSet selects the repair-status enumeration validated on
	// record mutations: "cameras" or "tasks".
	// Env: APP_STATUS_SET
	StatusSet string `env:"STATUS_SET"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for all flat-file storage backends used
// by the application.
type Storage struct {
	// Files holds the file-system paths of the persistence backends.
	Files Files `envPrefix:"FILES_"`
}

// Files holds the paths of the durable files the application owns.
type Files struct {
	// RecordsPath is the path of the device record CSV file.
	// Env: STORAGE_FILES_RECORDS_PATH
	RecordsPath string `env:"RECORDS_PATH"`

	// CredentialsPath is the path of the hashed credential file.
	// Env: STORAGE_FILES_CREDENTIALS_PATH
	CredentialsPath string `env:"CREDENTIALS_PATH"`

	// AuditLogPath is the path of the append-only action log CSV.
	// Env: STORAGE_FILES_AUDIT_LOG_PATH
	AuditLogPath string `env:"AUDIT_LOG_PATH"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins per field):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
