// Package config loads the .rulekit.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/donutnomad/rulekit/resource"
	"github.com/donutnomad/rulekit/rule"
	"github.com/spf13/cast"
	"golang.org/x/mod/modfile"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	FileName = ".rulekit.yaml"

	DefaultOutput  = "zz_rules_generated.go"
	DefaultDocsDir = "docs/rules"
)

var ErrNoModule = errors.New("no go.mod found")

type Docs struct {
	BaseURI string `yaml:"base_uri"`
	Output  string `yaml:"output"`
}

type Generate struct {
	Output string `yaml:"output"`
}

// Config is the project configuration. Relative paths are resolved against
// Root.
type Config struct {
	Docs       Docs           `yaml:"docs"`
	Resources  []string       `yaml:"resources"`
	Language   string         `yaml:"language"`
	Categories map[string]any `yaml:"categories"`
	Generate   Generate       `yaml:"generate"`

	// Root is the directory holding the config file, or the module root when
	// there is none.
	Root string `yaml:"-"`
	// ModulePath is read from the go.mod of the module containing Root.
	ModulePath string `yaml:"-"`
	// File is the loaded config file; empty for the defaults.
	File string `yaml:"-"`
}

// Discover finds and loads the config for dir. Without a config file the
// defaults rooted at the module root are returned.
func Discover(dir string) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		return Load(path)
	}

	root, modulePath, err := ModuleRoot(dir)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Root: root, ModulePath: modulePath}
	cfg.setDefaults()
	return cfg, nil
}

// Find walks up from dir looking for FileName and stops at the module root.
// It returns "" when no config exists.
func Find(dir string) (string, error) {
	current := dir
	for {
		path := filepath.Join(current, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}

		if _, err := os.Stat(filepath.Join(current, "go.mod")); err == nil {
			return "", nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

// Load reads the config file at path.
func Load(path string) (*Config, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.File = path
	cfg.Root = filepath.Dir(path)
	if _, modulePath, err := ModuleRoot(cfg.Root); err == nil {
		cfg.ModulePath = modulePath
	} else if !errors.Is(err, ErrNoModule) {
		return nil, err
	}
	cfg.setDefaults()

	if _, err := cfg.CategorySeverities(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := cfg.Tag(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Generate.Output == "" {
		c.Generate.Output = DefaultOutput
	}
	if c.Docs.Output == "" {
		c.Docs.Output = DefaultDocsDir
	}
}

// Path resolves p against Root.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Tag returns the configured default language, English when unset.
func (c *Config) Tag() (language.Tag, error) {
	if c.Language == "" {
		return language.English, nil
	}
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, fmt.Errorf("language %q: %w", c.Language, err)
	}
	return tag, nil
}

// CategorySeverities parses the categories section. Values are severity
// names or their numeric values.
func (c *Config) CategorySeverities() (map[string]rule.Severity, error) {
	out := make(map[string]rule.Severity, len(c.Categories))
	for category, raw := range c.Categories {
		sev, err := parseSeverity(raw)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", category, err)
		}
		out[category] = sev
	}
	return out, nil
}

func parseSeverity(raw any) (rule.Severity, error) {
	if n, err := cast.ToUint8E(raw); err == nil {
		sev := rule.Severity(n)
		if !sev.Valid() {
			return 0, fmt.Errorf("unknown severity %d", n)
		}
		return sev, nil
	}
	name, err := cast.ToStringE(raw)
	if err != nil {
		return 0, err
	}
	return rule.ParseSeverity(name)
}

// LoadResources loads the configured resource directories into a store.
func (c *Config) LoadResources() (*resource.Store, error) {
	tag, err := c.Tag()
	if err != nil {
		return nil, err
	}
	store := resource.NewStore(tag)
	for _, dir := range c.Resources {
		if err := store.LoadFS(os.DirFS(c.Path(dir)), "."); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// RuleConfig builds a rule.Config for a family with the given prefix from
// the project settings.
func (c *Config) RuleConfig(prefix string, resources resource.Provider) (rule.Config, error) {
	tag, err := c.Tag()
	if err != nil {
		return rule.Config{}, err
	}
	categories, err := c.CategorySeverities()
	if err != nil {
		return rule.Config{}, err
	}
	return rule.Config{
		Prefix:          prefix,
		DocsBaseURI:     c.Docs.BaseURI,
		Resources:       resources,
		Language:        tag,
		DefaultSeverity: rule.CategoryDefaults(categories),
	}, nil
}

// CategoryNames returns the configured category names, sorted.
func (c *Config) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModuleRoot returns the directory of the go.mod governing dir and its module
// path.
func ModuleRoot(dir string) (root, modulePath string, err error) {
	current := dir
	for {
		data, err := os.ReadFile(filepath.Join(current, "go.mod"))
		if os.IsNotExist(err) {
			if current == filepath.Dir(current) {
				return "", "", fmt.Errorf("%w above %s", ErrNoModule, dir)
			}
			current = filepath.Dir(current)
			continue
		} else if err != nil {
			return "", "", err
		}
		return current, modfile.ModulePath(data), nil
	}
}

// ImportPath returns the import path of the package in dir.
func ImportPath(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	root, modulePath, err := ModuleRoot(dir)
	if err != nil {
		return "", err
	}
	rel := strings.TrimPrefix(dir, root)
	return filepath.ToSlash(filepath.Join(modulePath, rel)), nil
}
