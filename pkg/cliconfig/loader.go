package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config under the user
	// config directory.
	GlobalConfigDir = "tempoid"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".tempoidrc.yaml", ".tempoidrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .tempoidrc.yaml or .tempoidrc.yml in the current directory.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir means no global config
		return "", nil
	}
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(configDir, GlobalConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadConfigFile loads a CLIConfig from a YAML file. Keys present in the file
// are recorded in SetFields. Unknown keys are rejected with their position.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	cfg.Sources = make(map[string]string)
	cfg.SetFields = make(map[string]bool)

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}
	if len(doc.Content) == 0 {
		// empty file
		return &cfg, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ConfigError{Path: path, Line: root.Line, Column: root.Column, Message: "expected a mapping"}
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if !slices.Contains(Keys, key.Value) {
			return nil, &ConfigError{
				Path:    path,
				Line:    key.Line,
				Column:  key.Column,
				Message: fmt.Sprintf("unknown key %q", key.Value),
			}
		}
		cfg.SetFields[key.Value] = true
	}

	if err := root.Decode(&cfg); err != nil {
		ce := &ConfigError{Path: path, Message: err.Error()}
		var te *yaml.TypeError
		if errors.As(err, &te) && len(te.Errors) > 0 {
			ce.Message = te.Errors[0]
		}
		return nil, ce
	}
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, column %d): %s", e.Path, e.Line, e.Column, e.Message)
	}
	return e.Path + ": " + e.Message
}

// LoadAll loads configuration from every file source and the environment and
// merges them. explicitPath, when not empty, overrides TEMPOID_CONFIG.
// Precedence: env > explicit file > local config > global config > defaults.
// Flags are applied by the caller.
func LoadAll(explicitPath string) (*CLIConfig, error) {
	cfg := NewDefault()

	globalPath, err := FindGlobalConfig()
	if err != nil {
		return nil, err
	}
	if globalPath != "" {
		globalCfg, err := LoadConfigFile(globalPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, globalCfg, SourceGlobal)
	}

	localPath, err := FindLocalConfig()
	if err != nil {
		return nil, err
	}
	if localPath != "" {
		localCfg, err := LoadConfigFile(localPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, localCfg, SourceLocal)
	}

	if explicitPath == "" {
		explicitPath = os.Getenv(EnvConfig)
	}
	if explicitPath != "" {
		fileCfg, err := LoadConfigFile(explicitPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, fileCfg, SourceFile)
	}

	LoadEnvConfig(cfg)
	if explicitPath != "" {
		cfg.ConfigFile = explicitPath
	}

	return cfg, nil
}
