package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/minatolabs/minato/internal/llm"
)

const (
	authFileName = "auth.json"
	filePerms    = 0600 // Owner read/write only
)

// AuthData is the structure of auth.json
type AuthData struct {
	Version         int                       `json:"version"`
	Providers       map[llm.ProviderID]string `json:"providers"`
	Services        map[Service]string        `json:"services"`
	DefaultProvider llm.ProviderID            `json:"default_provider"`
}

// Store manages credential storage
type Store struct {
	mu       sync.RWMutex
	filePath string
	data     *AuthData
}

// NewStore creates a new credential store
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	filePath := filepath.Join(dataDir, authFileName)
	store := &Store{
		filePath: filePath,
		data: &AuthData{
			Version:         1,
			Providers:       make(map[llm.ProviderID]string),
			Services:        make(map[Service]string),
			DefaultProvider: llm.ProviderAnthropic,
		},
	}

	// Try to load existing data
	if err := store.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load auth data: %w", err)
	}

	return store, nil
}

// load reads the auth file from disk
func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var authData AuthData
	if err := json.Unmarshal(data, &authData); err != nil {
		return fmt.Errorf("failed to parse auth file: %w", err)
	}

	// Invariant: the maps are never nil, even if auth.json was corrupted or
	// manually edited to remove a field.
	if authData.Providers == nil {
		authData.Providers = make(map[llm.ProviderID]string)
	}
	if authData.Services == nil {
		authData.Services = make(map[Service]string)
	}

	s.data = &authData
	return nil
}

// save writes the auth file to disk with secure permissions
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal auth data: %w", err)
	}

	// Write to temp file first, then rename (atomic)
	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, filePerms); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}

	if err := os.Rename(tmpPath, s.filePath); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup of temp file
		return fmt.Errorf("failed to save auth file: %w", err)
	}

	return nil
}

// GetProviderKey returns the stored API key for a provider
func (s *Store) GetProviderKey(providerID llm.ProviderID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.data.Providers[providerID]
	if !ok || key == "" {
		return "", fmt.Errorf("no credential found for provider: %s", providerID)
	}

	return key, nil
}

// SetProviderKey stores an API key for a provider
func (s *Store) SetProviderKey(providerID llm.ProviderID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Providers[providerID] = key
	return s.save()
}

// RemoveProviderKey removes the stored key for a provider
func (s *Store) RemoveProviderKey(providerID llm.ProviderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.Providers, providerID)
	return s.save()
}

// GetServiceKey returns the stored API key for a tool backend
func (s *Store) GetServiceKey(service Service) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.data.Services[service]
	if !ok || key == "" {
		return "", fmt.Errorf("no credential found for service: %s", service)
	}

	return key, nil
}

// SetServiceKey stores an API key for a tool backend
func (s *Store) SetServiceKey(service Service, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Services[service] = key
	return s.save()
}

// RemoveServiceKey removes the stored key for a tool backend
func (s *Store) RemoveServiceKey(service Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.Services, service)
	return s.save()
}

// GetDefaultProvider returns the default provider ID
func (s *Store) GetDefaultProvider() llm.ProviderID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data.DefaultProvider == "" {
		return llm.ProviderAnthropic
	}
	return s.data.DefaultProvider
}

// SetDefaultProvider sets the default provider
func (s *Store) SetDefaultProvider(providerID llm.ProviderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.DefaultProvider = providerID
	return s.save()
}

// ListProviders returns all providers with stored credentials
func (s *Store) ListProviders() []llm.ProviderID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]llm.ProviderID, 0, len(s.data.Providers))
	for id := range s.data.Providers {
		ids = append(ids, id)
	}
	return ids
}
