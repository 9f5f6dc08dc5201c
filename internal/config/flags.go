package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-records device record CSV path
//	-credentials credential file path
//	-audit-log action log CSV path
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-pbkdf2-iterations credential hash iteration count
//	-status-set status enumeration name ("cameras" or "tasks")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var recordsPath string
	var credentialsPath string
	var auditLogPath string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var pbkdf2Iterations int
	var statusSet string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&recordsPath, "records", "", "Device record CSV path")
	flag.StringVar(&credentialsPath, "credentials", "", "Credential file path")
	flag.StringVar(&auditLogPath, "audit-log", "", "Action log CSV path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.IntVar(&pbkdf2Iterations, "pbkdf2-iterations", 0, "Credential hash iteration count")
	flag.StringVar(&statusSet, "status-set", "", "Status enumeration name (cameras or tasks)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:     tokenSignKey,
			TokenIssuer:      tokenIssuer,
			TokenDuration:    tokenDuration,
			PBKDF2Iterations: pbkdf2Iterations,
			StatusSet:        statusSet,
		},
		Storage: Storage{
			Files: Files{
				RecordsPath:     recordsPath,
				CredentialsPath: credentialsPath,
				AuditLogPath:    auditLogPath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string so that
// merging treats the flag as unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
