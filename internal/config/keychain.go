package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	// KeychainServiceName is the service name used when storing tokens in the system keychain
	KeychainServiceName = "com.ciwatch.cli"

	// EnvVarTokenStorage allows users to override token storage mechanism
	// Valid values: "keychain" (default), "file"
	EnvVarTokenStorage = "CIW_TOKEN_STORAGE"
)

// ErrNoToken is returned when no token is stored for a target
var ErrNoToken = errors.New("no token stored")

// TokenStorage stores the token of each target, keyed by target name
type TokenStorage interface {
	Get(target string) (string, error)
	Set(target, token string) error
	Delete(target string) error
}

// KeychainTokenStorage stores tokens in the system keychain (macOS Keychain, Windows Credential Manager, Linux Secret Service)
type KeychainTokenStorage struct {
	serviceName string
}

// NewKeychainTokenStorage creates a new keychain-based token storage
func NewKeychainTokenStorage() *KeychainTokenStorage {
	return &KeychainTokenStorage{
		serviceName: KeychainServiceName,
	}
}

// Get retrieves the token of a target from the keychain
func (k *KeychainTokenStorage) Get(target string) (string, error) {
	token, err := keyring.Get(k.serviceName, target)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w for target %q", ErrNoToken, target)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get token from keychain: %w", err)
	}
	return token, nil
}

// Set stores the token of a target in the keychain
func (k *KeychainTokenStorage) Set(target, token string) error {
	if err := keyring.Set(k.serviceName, target, token); err != nil {
		return fmt.Errorf("failed to set token in keychain: %w", err)
	}
	return nil
}

// Delete removes the token of a target from the keychain. A missing token is not an error.
func (k *KeychainTokenStorage) Delete(target string) error {
	err := keyring.Delete(k.serviceName, target)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keychain: %w", err)
	}
	return nil
}

// FileTokenStorage stores tokens next to their target in the config file
type FileTokenStorage struct {
	conf *Config
}

// NewFileTokenStorage creates a new file-based token storage
func NewFileTokenStorage(conf *Config) *FileTokenStorage {
	return &FileTokenStorage{
		conf: conf,
	}
}

// Get retrieves the token of a target from the config file
func (f *FileTokenStorage) Get(target string) (string, error) {
	token := f.conf.file.Targets[target].Token
	if token == "" {
		return "", fmt.Errorf("%w for target %q", ErrNoToken, target)
	}
	return token, nil
}

// Set stores the token of a target in the config file
func (f *FileTokenStorage) Set(target, token string) error {
	entry, ok := f.conf.file.Targets[target]
	if !ok {
		return errTargetNotFound(target)
	}
	entry.Token = token
	f.conf.file.Targets[target] = entry
	return f.conf.write()
}

// Delete removes the token of a target from the config file
func (f *FileTokenStorage) Delete(target string) error {
	entry, ok := f.conf.file.Targets[target]
	if !ok || entry.Token == "" {
		return nil
	}
	entry.Token = ""
	f.conf.file.Targets[target] = entry
	return f.conf.write()
}

// ShouldUseKeychain returns true if keychain storage should be used. The
// keychain is skipped on CI machines, which rarely have one unlocked.
func ShouldUseKeychain() bool {
	switch os.Getenv(EnvVarTokenStorage) {
	case "keychain":
		return true
	case "file":
		return false
	}
	return os.Getenv("CI") == ""
}
