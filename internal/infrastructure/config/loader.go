package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config file base names, tried with each extension in order.
const (
	ControllerFile = "controller"
	LevelDir       = "levels"
)

var extensions = []string{".yaml", ".yml", ".json"}

// Loader loads controller and level configuration from JSON or YAML files
// using the fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from.
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadController loads controller.{yaml,yml,json} on top of Default and
// validates the result.
func (l *Loader) LoadController() (*ControllerConfig, error) {
	cfg := Default()
	name, err := l.decodeFirst(ControllerFile, cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

// LoadLevel loads levels/<name>.{yaml,yml,json}
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	var cfg LevelConfig
	if _, err := l.decodeFirst(path.Join(LevelDir, name), &cfg); err != nil {
		return nil, err
	}
	if cfg.ID == "" {
		cfg.ID = name
	}
	return &cfg, nil
}

// ReadFile reads a file relative to the base path, such as a modifier script.
func (l *Loader) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (l *Loader) decodeFirst(base string, out any) (string, error) {
	for _, ext := range extensions {
		name := base + ext
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return name, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := Decode(name, data, out); err != nil {
			return name, err
		}
		return name, nil
	}
	return base, fmt.Errorf("failed to read %s: no %s file: %w", base, strings.Join(extensions, "/"), fs.ErrNotExist)
}

// Decode parses data as YAML or JSON depending on the extension of name.
func Decode(name string, data []byte, out any) error {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", name)
	}
	return nil
}

// IsConfigFile reports whether path has an extension the loader reads.
func IsConfigFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
