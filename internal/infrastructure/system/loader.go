package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "github.com/the-guild-org/secrets/internal/application/errors"
)

// Keys lists every setting, in dotted form.
var Keys = []string{
	"gpg-key",
	"tool.version",
	"tool.install-root",
	"tool.archive-url",
	"tool.build-target",
	"source.kind",
	"source.dir",
	"source.work-dir",
	"source.repository",
	"source.clone-dir",
	"source.secrets-path",
	"source.suffix",
	"outputs.prefix",
	"redaction.gitleaks",
	"redaction.patterns",
}

// InputName returns the CI input or flag name for a dotted key.
func InputName(key string) string {
	return strings.ReplaceAll(key, ".", "-")
}

// ConfigLoader resolves a Config. Later sources win: defaults, config file,
// action inputs (INPUT_ environment variables), changed flags.
type ConfigLoader struct {
	flags  *pflag.FlagSet
	action *githubactions.Action
}

// NewConfigLoader creates a loader. Flags named after InputName(key) are bound
// when present in flags, which may be nil.
func NewConfigLoader(flags *pflag.FlagSet) *ConfigLoader {
	return &ConfigLoader{flags: flags, action: githubactions.New()}
}

// Load resolves and validates the configuration. path may be empty.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	v := viper.New()
	defaults := DefaultConfig()

	v.SetDefault("tool.version", defaults.Tool.Version)
	v.SetDefault("tool.install-root", defaults.Tool.InstallRoot)
	v.SetDefault("tool.archive-url", defaults.Tool.ArchiveURL)
	v.SetDefault("tool.build-target", defaults.Tool.BuildTarget)
	v.SetDefault("source.kind", defaults.Source.Kind)
	v.SetDefault("source.dir", defaults.Source.Dir)
	v.SetDefault("source.work-dir", defaults.Source.WorkDir)
	v.SetDefault("source.secrets-path", defaults.Source.SecretsPath)
	v.SetDefault("source.suffix", defaults.Source.Suffix)
	v.SetDefault("redaction.gitleaks", defaults.Redaction.Gitleaks)
	v.SetDefault("redaction.patterns", defaults.Redaction.Patterns)

	doc := map[string]any{}
	if path != "" {
		//nolint:gosec // G304: path is the user-provided config file
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewConfigurationError("file", "failed to read config file", err)
		}
		doc, err = decodeConfigFile(data)
		if err != nil {
			return nil, apperrors.NewConfigurationError("file", path, err)
		}
	}

	// Inputs replace file values in place. Merging them as a second map
	// would drop any input whose type differs from the file value.
	l.overlayInputs(doc)
	if len(doc) > 0 {
		if err := v.MergeConfigMap(doc); err != nil {
			return nil, apperrors.NewConfigurationError("file", "failed to merge configuration", err)
		}
	}

	for _, key := range Keys {
		if l.flags == nil {
			break
		}
		if f := l.flags.Lookup(InputName(key)); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.NewConfigurationError("settings", "failed to decode configuration", err)
	}
	cfg.normalize()

	// Defaults that depend on other settings.
	if !v.IsSet("outputs.prefix") {
		cfg.Outputs.Prefix = cfg.SourceKind().DefaultOutputPrefix()
	}
	if cfg.Source.CloneDir == "" {
		cfg.Source.CloneDir = filepath.Join(cfg.Tool.InstallRoot, cloneDirName)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlayInputs sets every non-empty action input on doc under its dotted key.
func (l *ConfigLoader) overlayInputs(doc map[string]any) {
	for _, key := range Keys {
		value := l.action.GetInput(InputName(key))
		if value == "" {
			continue
		}

		parts := strings.Split(key, ".")
		m := doc
		for _, part := range parts[:len(parts)-1] {
			child, ok := m[part].(map[string]any)
			if !ok {
				child = map[string]any{}
				m[part] = child
			}
			m = child
		}
		m[parts[len(parts)-1]] = value
	}
}
