// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for checkauth.
// It stores the optional bearer token sent to the auth endpoint in the OS
// credential store (macOS Keychain, Windows Credential Manager, Secret Service,
// KWallet or pass on Linux). No file fallback is offered.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	mu            sync.Mutex
)

// ErrTokenNotFound is returned when no token has been stored.
var ErrTokenNotFound = errors.New("no token stored")

// Backend is the minimal key/value contract the manager needs.
type Backend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	backend Backend
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "checkauth"

// KeyAccessToken is the item holding the bearer token.
const KeyAccessToken = "auth_access_token"

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		if b, err := newSecurityBackend(); err == nil {
			return &Manager{backend: b}, nil
		}
		// Fall through to keyring library if security command fails
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{backend: &ringBackend{ring: ring}}, nil
}

// NewManagerWith builds a manager over an explicit backend.
func NewManagerWith(b Backend) *Manager {
	return &Manager{backend: b}
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	m, err := NewManager()
	if err != nil {
		return nil, err
	}
	globalManager = m
	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only.
func openRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// pass requires the 'pass' utility: brew install pass
		allowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	case "linux", "freebsd", "openbsd":
		allowedBackends = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	default:
		return nil, errors.New("secure storage not supported on this OS")
	}

	cfg := keyring.Config{
		ServiceName:              ServiceName,
		AllowedBackends:          allowedBackends,
		PassPrefix:               ServiceName,
		WinCredPrefix:            ServiceName,
		KeychainTrustApplication: true,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. Install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

// SaveToken stores the bearer token.
// This method is thread-safe.
func (m *Manager) SaveToken(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend.Set(KeyAccessToken, token)
}

// LoadToken retrieves the bearer token. It returns ErrTokenNotFound when
// nothing is stored.
// This method is thread-safe.
func (m *Manager) LoadToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	token, err := m.backend.Get(KeyAccessToken)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) || errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// ClearToken removes the bearer token. Removing a missing token is not an error.
// This method is thread-safe.
func (m *Manager) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.backend.Delete(KeyAccessToken)
	if errors.Is(err, ErrTokenNotFound) || errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

// ringBackend adapts keyring.Keyring to Backend.
type ringBackend struct {
	ring keyring.Keyring
}

func (r *ringBackend) Set(key, value string) error {
	return r.ring.Set(keyring.Item{Key: key, Data: []byte(value), Label: ServiceName + " " + key})
}

func (r *ringBackend) Get(key string) (string, error) {
	it, err := r.ring.Get(key)
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

func (r *ringBackend) Delete(key string) error {
	return r.ring.Remove(key)
}
