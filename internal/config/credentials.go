package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Startup failures while loading the database credential document. The
// entry point distinguishes these so the fatal message names the actual
// cause instead of a generic load error.
var (
	ErrCredentialsNotFound = errors.New("database credentials file not found")
	ErrCredentialsInvalid  = errors.New("database credentials file is not valid JSON")
)

// DatabaseCredentials is the service-account credential document stored at
// a well-known local path. It is deliberately not part of config.yaml so the
// secret-bearing file can be mounted separately.
type DatabaseCredentials struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// LoadDatabaseCredentials reads and parses the credential document at path.
func LoadDatabaseCredentials(path string) (*DatabaseCredentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCredentialsNotFound, path)
		}
		return nil, fmt.Errorf("reading database credentials %s: %w", path, err)
	}

	var creds DatabaseCredentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCredentialsInvalid, path, err)
	}

	if creds.URI == "" {
		return nil, fmt.Errorf("%w: %s: missing \"uri\" field", ErrCredentialsInvalid, path)
	}
	if creds.Database == "" {
		return nil, fmt.Errorf("%w: %s: missing \"database\" field", ErrCredentialsInvalid, path)
	}

	return &creds, nil
}
