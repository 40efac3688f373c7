// Package system loads the action configuration from defaults, an optional
// config file, CI inputs and command-line flags.
package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	apperrors "github.com/the-guild-org/secrets/internal/application/errors"
	"github.com/the-guild-org/secrets/internal/domain/values"
)

// Defaults for values not supplied by any source.
const (
	DefaultToolVersion = "v0.5.0"
	DefaultArchiveURL  = "https://github.com/sobolevn/git-secret/archive/refs/tags/%s.tar.gz"
	DefaultBuildTarget = "build"
	DefaultSecretsDir  = "secrets"
	DefaultSuffix      = ".secret"
	cloneDirName       = "secrets-repository"
)

// Config is the complete, resolved configuration of one run.
type Config struct {
	GPGKey    string          `mapstructure:"gpg-key"`
	Tool      ToolConfig      `mapstructure:"tool"`
	Source    SourceConfig    `mapstructure:"source"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Redaction RedactionConfig `mapstructure:"redaction"`
}

// ToolConfig pins the git-secret install.
type ToolConfig struct {
	Version     string `mapstructure:"version"`
	InstallRoot string `mapstructure:"install-root"`
	ArchiveURL  string `mapstructure:"archive-url"`
	BuildTarget string `mapstructure:"build-target"`
}

// SourceConfig locates the encrypted secrets.
type SourceConfig struct {
	Kind        string `mapstructure:"kind"`
	Dir         string `mapstructure:"dir"`
	WorkDir     string `mapstructure:"work-dir"`
	Repository  string `mapstructure:"repository"`
	CloneDir    string `mapstructure:"clone-dir"`
	SecretsPath string `mapstructure:"secrets-path"`
	Suffix      string `mapstructure:"suffix"`
}

// OutputsConfig shapes published output names.
type OutputsConfig struct {
	Prefix string `mapstructure:"prefix"`
}

// RedactionConfig configures how log output is sanitized.
type RedactionConfig struct {
	Patterns []string `mapstructure:"patterns"`
	Gitleaks bool     `mapstructure:"gitleaks"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	root := os.TempDir()
	return &Config{
		Tool: ToolConfig{
			Version:     DefaultToolVersion,
			InstallRoot: root,
			ArchiveURL:  DefaultArchiveURL,
			BuildTarget: DefaultBuildTarget,
		},
		Source: SourceConfig{
			Kind:        string(values.SourceLocal),
			Dir:         DefaultSecretsDir,
			WorkDir:     ".",
			CloneDir:    filepath.Join(root, cloneDirName),
			SecretsPath: DefaultSecretsDir,
			Suffix:      DefaultSuffix,
		},
		Outputs: OutputsConfig{
			Prefix: values.SourceLocal.DefaultOutputPrefix(),
		},
		Redaction: RedactionConfig{
			Gitleaks: true,
			Patterns: []string{},
		},
	}
}

// SourceKind returns the parsed source kind. Call Validate first.
func (c *Config) SourceKind() values.SourceKind {
	return values.SourceKind(c.Source.Kind)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := semver.NewVersion(c.Tool.Version); err != nil {
		errs = append(errs, fmt.Errorf("tool.version %q is not a semantic version", c.Tool.Version))
	}
	if c.Tool.InstallRoot == "" {
		errs = append(errs, errors.New("tool.install-root is required"))
	}
	if strings.Count(c.Tool.ArchiveURL, "%s") != 1 {
		errs = append(errs, fmt.Errorf("tool.archive-url %q must contain exactly one %%s", c.Tool.ArchiveURL))
	}
	if c.Tool.BuildTarget == "" {
		errs = append(errs, errors.New("tool.build-target is required"))
	}

	kind, err := values.ParseSourceKind(c.Source.Kind)
	if err != nil {
		errs = append(errs, err)
	}
	switch kind {
	case values.SourceLocal:
		if c.Source.Dir == "" {
			errs = append(errs, errors.New("source.dir is required for local secrets"))
		}
	case values.SourceRepository:
		if c.Source.Repository == "" {
			errs = append(errs, errors.New("source.repository is required for repository secrets"))
		}
		if c.Source.CloneDir == "" {
			errs = append(errs, errors.New("source.clone-dir is required for repository secrets"))
		}
	}
	if c.Source.Suffix == "" {
		errs = append(errs, errors.New("source.suffix must not be empty"))
	}

	if len(errs) > 0 {
		return apperrors.NewConfigurationError("settings", "invalid configuration", errors.Join(errs...))
	}
	return nil
}

// normalize trims every string setting, as the CI toolkit does for inputs.
func (c *Config) normalize() {
	for _, s := range []*string{
		&c.GPGKey,
		&c.Tool.Version, &c.Tool.InstallRoot, &c.Tool.ArchiveURL, &c.Tool.BuildTarget,
		&c.Source.Kind, &c.Source.Dir, &c.Source.WorkDir, &c.Source.Repository,
		&c.Source.CloneDir, &c.Source.SecretsPath, &c.Source.Suffix,
		&c.Outputs.Prefix,
	} {
		*s = strings.TrimSpace(*s)
	}
	c.Source.Kind = strings.ToLower(c.Source.Kind)
}
