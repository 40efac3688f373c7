// Package container provides dependency injection for the application.
package container

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/the-guild-org/secrets/internal/application/ports"
	"github.com/the-guild-org/secrets/internal/application/services"
	"github.com/the-guild-org/secrets/internal/domain/entities"
	"github.com/the-guild-org/secrets/internal/domain/values"
	"github.com/the-guild-org/secrets/internal/infrastructure/actions"
	"github.com/the-guild-org/secrets/internal/infrastructure/archive"
	"github.com/the-guild-org/secrets/internal/infrastructure/download"
	"github.com/the-guild-org/secrets/internal/infrastructure/lock"
	"github.com/the-guild-org/secrets/internal/infrastructure/process"
	"github.com/the-guild-org/secrets/internal/infrastructure/redaction"
	"github.com/the-guild-org/secrets/internal/infrastructure/sensitivedata"
	"github.com/the-guild-org/secrets/internal/infrastructure/system"
	"github.com/the-guild-org/secrets/internal/version"
)

// Container holds all application dependencies.
type Container struct {
	config         *system.Config
	provider       *sensitivedata.Provider
	redactor       *redaction.Redactor
	publisher      *actions.Publisher
	installation   entities.Installation
	revealUseCase  *services.RevealSecretsUseCase
	installUseCase *services.InstallUseCase
	logger         *slog.Logger
}

// Options configure the container.
type Options struct {
	Config *system.Config
	// Stdout receives workflow commands. Defaults to os.Stdout.
	Stdout io.Writer
	// LogOutput receives redacted log lines. Defaults to os.Stderr.
	LogOutput io.Writer
	// OutputFile is the file outputs are appended to; empty selects the legacy command.
	OutputFile string
	LogLevel   slog.Level
	HTTPClient *http.Client
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	cfg := opts.Config

	// Redaction comes first so every later log line is scrubbed.
	provider := sensitivedata.NewProvider()
	provider.Track(cfg.GPGKey)

	redactor, err := redaction.NewWithProvider(redaction.Config{
		Patterns:        cfg.Redaction.Patterns,
		DisableGitleaks: !cfg.Redaction.Gitleaks,
	}, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redactor: %w", err)
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(sensitivedata.NewWriter(opts.LogOutput, redactor), &slog.HandlerOptions{
		Level: opts.LogLevel,
	}))

	installation, err := entities.NewInstallation(cfg.Tool.InstallRoot, cfg.Tool.Version)
	if err != nil {
		return nil, err
	}

	// Initialize adapters
	runner := process.NewRunner(logger)
	fetcher := download.NewFetcher(opts.HTTPClient, version.Get().UserAgent(), logger)
	extractor := archive.NewTarGzExtractor()
	locker := lock.NewFileLocker(logger, 0)
	publisher := actions.NewPublisher(opts.Stdout, opts.OutputFile, provider)

	source, err := newSource(cfg, runner, logger)
	if err != nil {
		return nil, err
	}

	// Create application services
	installer := services.NewInstaller(runner, fetcher, extractor, locker, services.InstallerOptions{
		ArchiveURL:  cfg.Tool.ArchiveURL,
		BuildTarget: cfg.Tool.BuildTarget,
	}, logger)
	importer := services.NewKeyImporter(runner, "", logger)
	revealer := services.NewRevealer(runner, publisher, cfg.Source.Suffix, logger)

	// Wire up use cases
	revealUseCase := services.NewRevealSecretsUseCase(installer, importer, revealer, source, installation, logger)
	installUseCase := services.NewInstallUseCase(installer, installation)

	return &Container{
		config:         cfg,
		provider:       provider,
		redactor:       redactor,
		publisher:      publisher,
		installation:   installation,
		revealUseCase:  revealUseCase,
		installUseCase: installUseCase,
		logger:         logger,
	}, nil
}

func newSource(cfg *system.Config, runner ports.CommandRunner, logger *slog.Logger) (ports.SecretsSource, error) {
	kind, err := values.ParseSourceKind(cfg.Source.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case values.SourceRepository:
		return services.NewRepositorySource(runner, services.RepositorySourceOptions{
			Repository:  cfg.Source.Repository,
			CloneDir:    cfg.Source.CloneDir,
			SecretsPath: cfg.Source.SecretsPath,
			Prefix:      cfg.Outputs.Prefix,
		}, logger), nil
	default:
		return services.NewLocalSource(services.LocalSourceOptions{
			Dir:     cfg.Source.Dir,
			WorkDir: cfg.Source.WorkDir,
			Suffix:  cfg.Source.Suffix,
			Prefix:  cfg.Outputs.Prefix,
		}, logger), nil
	}
}

// RevealSecretsUseCase returns the full pipeline use case.
func (c *Container) RevealSecretsUseCase() *services.RevealSecretsUseCase {
	return c.revealUseCase
}

// InstallUseCase returns the install-only use case.
func (c *Container) InstallUseCase() *services.InstallUseCase {
	return c.installUseCase
}

// Config returns the resolved configuration.
func (c *Container) Config() *system.Config {
	return c.config
}

// Installation returns the pinned install location.
func (c *Container) Installation() entities.Installation {
	return c.installation
}

// SensitiveValues returns the provider tracking every secret seen so far.
func (c *Container) SensitiveValues() ports.SensitiveValueProvider {
	return c.provider
}

// Publisher returns the workflow command publisher.
func (c *Container) Publisher() *actions.Publisher {
	return c.publisher
}

// Logger returns the redacting logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
