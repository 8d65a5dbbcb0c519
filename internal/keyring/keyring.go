// Package keyring keeps the LifeGrid database connection string in the OS
// credential store. config.Load falls back to it when neither --database nor
// LIFEGRID_DATABASE_URL/DATABASE_URL is set, so `lifegrid serve` can reach a
// password-protected PostgreSQL instance without the password sitting in the
// environment or in shell history.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/lifegrid/internal/constants"
)

var (
	// ErrNotFound means no connection string has been stored yet.
	ErrNotFound = errors.New("no database connection string in keyring")
	// ErrKeyringUnavailable means the OS credential store did not answer.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entries live under service "lifegrid"; probeAccount is never written.
const (
	service      = constants.AppName
	account      = constants.DefaultKeyringUser
	probeAccount = "availability-check"
)

// GetConnectionString returns the stored connection string.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(service, account)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString replaces the stored connection string. Surrounding
// whitespace is dropped.
func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(service, account, connStr); err != nil {
		return fmt.Errorf("failed to save database connection string: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := keyring.Delete(service, account)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("failed to remove database connection string: %w", err)
	}
	return nil
}

// IsAvailable reports whether the credential store answers a lookup at all.
// A missing entry still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(service, probeAccount)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
