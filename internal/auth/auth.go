package auth

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/minatolabs/minato/internal/llm"
)

// Service identifies a tool backend that needs an API key.
type Service string

const (
	ServiceSerper Service = "serper"
	ServicePexels Service = "pexels"
	ServiceStripe Service = "stripe"
)

// AllServices lists the keyed tool backends.
func AllServices() []Service {
	return []Service{ServiceSerper, ServicePexels, ServiceStripe}
}

// EnvVarForService returns the environment variable a service key can be
// supplied through.
func EnvVarForService(service Service) string {
	switch service {
	case ServiceSerper:
		return "SERPER_API_KEY"
	case ServicePexels:
		return "PEXELS_API_KEY"
	case ServiceStripe:
		return "STRIPE_API_KEY"
	default:
		return ""
	}
}

// Manager handles credentials for LLM providers and tool backends.
type Manager struct {
	store *Store
}

// NewManager creates a new auth manager
func NewManager(dataDir string) (*Manager, error) {
	store, err := NewStore(dataDir)
	if err != nil {
		return nil, err
	}

	return &Manager{
		store: store,
	}, nil
}

// GetAPIKey returns the API key for a provider using priority resolution:
// 1. Environment variable
// 2. Config file (with env substitution)
// 3. Stored auth.json
func (m *Manager) GetAPIKey(providerID llm.ProviderID) (string, error) {
	// 1. Check environment variable
	envVar := llm.EnvVarForProvider(providerID)
	if envVar != "" {
		if key := os.Getenv(envVar); key != "" {
			return key, nil
		}
	}

	// 2. Check config file (with env substitution)
	configKey := fmt.Sprintf("llm.providers.%s.api_key", providerID)
	if key := viper.GetString(configKey); key != "" {
		resolved := resolveEnvSubstitution(key)
		if resolved != "" {
			return resolved, nil
		}
	}

	// 3. Check auth.json
	cred, err := m.store.GetProviderKey(providerID)
	if err == nil && cred != "" {
		return cred, nil
	}

	return "", fmt.Errorf("no API key found for provider: %s", providerID)
}

// GetServiceKey returns the API key for a tool backend with the same
// priority order as provider keys. Missing keys return ""; tool handlers
// report the gap in their result documents.
func (m *Manager) GetServiceKey(service Service) string {
	if envVar := EnvVarForService(service); envVar != "" {
		if key := os.Getenv(envVar); key != "" {
			return key
		}
	}

	configKey := fmt.Sprintf("services.%s.api_key", service)
	if key := viper.GetString(configKey); key != "" {
		if resolved := resolveEnvSubstitution(key); resolved != "" {
			return resolved
		}
	}

	key, _ := m.store.GetServiceKey(service)
	return key
}

// SetAPIKey stores an API key for a provider
func (m *Manager) SetAPIKey(providerID llm.ProviderID, key string) error {
	return m.store.SetProviderKey(providerID, key)
}

// SetServiceKey stores an API key for a tool backend.
func (m *Manager) SetServiceKey(service Service, key string) error {
	return m.store.SetServiceKey(service, key)
}

// RemoveCredential removes stored credentials for a provider
func (m *Manager) RemoveCredential(providerID llm.ProviderID) error {
	return m.store.RemoveProviderKey(providerID)
}

// RemoveServiceKey removes the stored key for a tool backend.
func (m *Manager) RemoveServiceKey(service Service) error {
	return m.store.RemoveServiceKey(service)
}

// HasCredential checks if a provider has stored credentials
func (m *Manager) HasCredential(providerID llm.ProviderID) bool {
	key, err := m.GetAPIKey(providerID)
	return err == nil && key != ""
}

// HasServiceKey checks if a tool backend has a usable key.
func (m *Manager) HasServiceKey(service Service) bool {
	return m.GetServiceKey(service) != ""
}

// ListConnected returns all providers with credentials
func (m *Manager) ListConnected() []llm.ProviderID {
	connected := make([]llm.ProviderID, 0)

	for _, id := range llm.AllProviderIDs() {
		if m.HasCredential(id) {
			connected = append(connected, id)
		}
	}

	return connected
}

// GetDefaultProvider returns the default provider ID
func (m *Manager) GetDefaultProvider() llm.ProviderID {
	return m.store.GetDefaultProvider()
}

// SetDefaultProvider sets the default provider
func (m *Manager) SetDefaultProvider(providerID llm.ProviderID) error {
	return m.store.SetDefaultProvider(providerID)
}

// resolveEnvSubstitution replaces {env:VAR_NAME} with environment variable values
func resolveEnvSubstitution(value string) string {
	if !strings.Contains(value, "{env:") {
		return value
	}

	re := regexp.MustCompile(`\{env:([^}]+)\}`)
	return re.ReplaceAllStringFunc(value, func(match string) string {
		// Extract variable name from {env:VAR_NAME}
		varName := match[5 : len(match)-1]
		return os.Getenv(varName)
	})
}
