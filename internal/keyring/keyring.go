package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/tracker/internal/constants"
)

var (
	// ErrNotFound is returned when nothing is stored for the account
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Account identifies one keyring entry. The zero value uses the app defaults.
type Account struct {
	Service string
	User    string
}

func (a Account) service() string {
	if a.Service == "" {
		return constants.AppName
	}
	return a.Service
}

func (a Account) user() string {
	if a.User == "" {
		return constants.DefaultKeyringUser
	}
	return a.User
}

// Get returns the stored PostgreSQL connection string.
func (a Account) Get() (string, error) {
	connStr, err := keyring.Get(a.service(), a.user())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// Set stores connStr, replacing any previous value.
func (a Account) Set(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(a.service(), a.user(), connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (a Account) Delete() error {
	if err := keyring.Delete(a.service(), a.user()); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether a keyring is usable. A lookup that fails with
// anything other than "not found" means there is none.
func (a Account) IsAvailable() bool {
	_, err := keyring.Get(a.service(), "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Source says where a resolved connection string came from.
type Source string

const (
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceNone    Source = ""
)

// ResolveConnection looks for a PostgreSQL connection string in the
// environment first, then the keyring. An unavailable keyring is not an error:
// the caller falls back to the SQLite file.
func (a Account) ResolveConnection() (string, Source, error) {
	if connStr := strings.TrimSpace(os.Getenv(constants.ConnectionEnvVar)); connStr != "" {
		return connStr, SourceEnv, nil
	}

	connStr, err := a.Get()
	switch {
	case err == nil:
		return connStr, SourceKeyring, nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrKeyringUnavailable):
		return "", SourceNone, nil
	default:
		return "", SourceNone, err
	}
}
