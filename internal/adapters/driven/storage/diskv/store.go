// Package diskv provides a driven.KVStore that keeps each key in its own
// file, using github.com/peterbourgon/diskv.
package diskv

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	dkv "github.com/peterbourgon/diskv/v3"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driven"
)

// cacheSize bounds the in-memory read cache.
const cacheSize = 256 * 1024

// Ensure Store implements the interface.
var _ driven.KVStore = (*Store)(nil)

// Store is a file-per-key KVStore.
type Store struct {
	mu       sync.RWMutex
	d        *dkv.Diskv
	basePath string
	closed   bool
}

// NewStore opens a store rooted at basePath. If basePath is empty,
// defaults to ~/.ims/state/kv.
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		basePath = filepath.Join(home, ".ims", "state", "kv")
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	return &Store{
		d: dkv.New(dkv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			CacheSizeMax:      cacheSize,
			PathPerm:          0o700,
			FilePerm:          0o600,
		}),
		basePath: basePath,
	}, nil
}

// BasePath returns the directory holding the key files.
func (s *Store) BasePath() string {
	return s.basePath
}

// Get retrieves the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, domain.ErrStoreClosed
	}

	name := encodeKey(key)
	if !s.d.Has(name) {
		return "", false, nil
	}
	val, err := s.d.Read(name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return string(val), true, nil
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	if err := s.d.Write(encodeKey(key), []byte(value)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	name := encodeKey(key)
	if !s.d.Has(name) {
		return nil
	}
	if err := s.d.Erase(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("erasing %s: %w", key, err)
	}
	return nil
}

// Keys returns the sorted keys that start with prefix. Files whose names
// are not encoded keys are ignored.
func (s *Store) Keys(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}

	keys := []string{}
	for name := range s.d.Keys(nil) {
		key, err := decodeKey(name)
		if err != nil {
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close marks the store closed. Later calls return domain.ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// encodeKey maps an arbitrary key to a file-name-safe string.
func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

func decodeKey(name string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// keyToPath stores every key directly under the base path.
func keyToPath(name string) *dkv.PathKey {
	return &dkv.PathKey{Path: []string{}, FileName: name}
}

func pathToKey(pk *dkv.PathKey) string {
	return pk.FileName
}
