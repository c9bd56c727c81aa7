// Package config contains the configuration for the ciw CLI
//
// Saved targets live in a single user config file. Tokens are kept in the
// system keychain unless CIW_TOKEN_STORAGE selects the config file instead.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	appData        = "AppData"
	configFilePath = "ciw.yaml"
	xdgConfigHome  = "XDG_CONFIG_HOME"
)

type targetConfig struct {
	API      string `yaml:"api"`
	Team     string `yaml:"team"`
	Insecure bool   `yaml:"insecure,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

type fileConfig struct {
	SelectedTarget string                  `yaml:"selected_target,omitempty"`
	Targets        map[string]targetConfig `yaml:"targets,omitempty"`
}

// Config holds the saved targets and which one is selected
type Config struct {
	fs     afero.Fs
	path   string
	file   fileConfig
	tokens TokenStorage
}

// New loads the user config file, warning on stderr if it cannot be read
func New(fs afero.Fs) *Config {
	path := configFile()
	conf, err := Open(fs, path, ShouldUseKeychain())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to read config %s: %v\n", path, err)
	}
	return conf
}

// Open loads the config file at path. The returned Config is usable even when
// an error is returned; it then starts out empty.
func Open(fs afero.Fs, path string, useKeychain bool) (*Config, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	file, err := loadFileConfig(fs, path)
	conf := &Config{
		fs:   fs,
		path: path,
		file: file,
	}
	if useKeychain {
		conf.tokens = NewKeychainTokenStorage()
	} else {
		conf.tokens = NewFileTokenStorage(conf)
	}
	return conf, err
}

// Path is the location of the config file
func (conf *Config) Path() string {
	return conf.path
}

// SelectedTarget is the name of the target commands use by default
func (conf *Config) SelectedTarget() string {
	return conf.file.SelectedTarget
}

// SelectTarget makes name the default target
func (conf *Config) SelectTarget(name string) error {
	if _, ok := conf.file.Targets[name]; !ok {
		return errTargetNotFound(name)
	}
	conf.file.SelectedTarget = name
	return conf.write()
}

// UsesKeychain reports whether tokens are stored in the system keychain
func (conf *Config) UsesKeychain() bool {
	_, ok := conf.tokens.(*KeychainTokenStorage)
	return ok
}

// Config path precedence: XDG_CONFIG_HOME, AppData (windows only), HOME.
func configFile() string {
	if a := os.Getenv(xdgConfigHome); a != "" {
		return filepath.Join(a, configFilePath)
	}
	if b := os.Getenv(appData); runtime.GOOS == "windows" && b != "" {
		return filepath.Join(b, "ciw", configFilePath)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", configFilePath)
}

func loadFileConfig(fs afero.Fs, path string) (fileConfig, error) {
	cfg := fileConfig{Targets: make(map[string]targetConfig)}
	if path == "" {
		return cfg, nil
	}

	file, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return cfg, err
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return fileConfig{Targets: make(map[string]targetConfig)}, err
	}
	if cfg.Targets == nil {
		cfg.Targets = make(map[string]targetConfig)
	}
	return cfg, nil
}

func writeFileConfig(fs afero.Fs, path string, cfg fileConfig) error {
	if path == "" {
		return nil
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return afero.WriteFile(fs, path, data, 0o600)
}

func (conf *Config) write() error {
	return writeFileConfig(conf.fs, conf.path, conf.file)
}
