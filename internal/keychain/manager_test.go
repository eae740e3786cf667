// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBackend mimics keyring's not-found behaviour.
type memoryBackend struct {
	items  map[string]string
	getErr error
}

func (m *memoryBackend) Set(key, value string) error {
	m.items[key] = value
	return nil
}

func (m *memoryBackend) Get(key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.items[key]
	if !ok {
		return "", keyring.ErrKeyNotFound
	}
	return v, nil
}

func (m *memoryBackend) Delete(key string) error {
	if _, ok := m.items[key]; !ok {
		return keyring.ErrKeyNotFound
	}
	delete(m.items, key)
	return nil
}

func TestManagerTokenLifecycle(t *testing.T) {
	m := NewManagerWith(&memoryBackend{items: map[string]string{}})

	_, err := m.LoadToken()
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, m.SaveToken("abc"))
	token, err := m.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, m.ClearToken())
	require.NoError(t, m.ClearToken())
	_, err = m.LoadToken()
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestManagerRejectsEmptyToken(t *testing.T) {
	m := NewManagerWith(&memoryBackend{items: map[string]string{}})
	assert.Error(t, m.SaveToken(""))
}

func TestManagerEmptyStoredValueIsNotFound(t *testing.T) {
	m := NewManagerWith(&memoryBackend{items: map[string]string{KeyAccessToken: ""}})
	_, err := m.LoadToken()
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestManagerPropagatesBackendErrors(t *testing.T) {
	boom := errors.New("keychain locked")
	m := NewManagerWith(&memoryBackend{items: map[string]string{}, getErr: boom})
	_, err := m.LoadToken()
	assert.ErrorIs(t, err, boom)
}

func TestRingBackend(t *testing.T) {
	b := &ringBackend{ring: keyring.NewArrayKeyring(nil)}
	m := NewManagerWith(b)

	_, err := m.LoadToken()
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, m.SaveToken("abc"))
	token, err := m.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	require.NoError(t, m.ClearToken())
}
