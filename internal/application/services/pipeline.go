// Package services contains application use cases.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/the-guild-org/secrets/internal/application/dto"
	apperrors "github.com/the-guild-org/secrets/internal/application/errors"
	"github.com/the-guild-org/secrets/internal/application/ports"
	"github.com/the-guild-org/secrets/internal/domain/entities"
	"github.com/the-guild-org/secrets/internal/domain/values"
)

// RevealSecretsUseCase runs install, key import, source preparation, reveal and
// publication strictly in sequence. The first failing step halts the run.
type RevealSecretsUseCase struct {
	installer    *Installer
	importer     *KeyImporter
	revealer     *Revealer
	source       ports.SecretsSource
	installation entities.Installation
	logger       *slog.Logger
}

// NewRevealSecretsUseCase creates a new reveal use case.
func NewRevealSecretsUseCase(
	installer *Installer,
	importer *KeyImporter,
	revealer *Revealer,
	source ports.SecretsSource,
	installation entities.Installation,
	logger *slog.Logger,
) *RevealSecretsUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &RevealSecretsUseCase{
		installer:    installer,
		importer:     importer,
		revealer:     revealer,
		source:       source,
		installation: installation,
		logger:       logger,
	}
}

// pipelineRun is the state threaded through the steps of one Execute call.
type pipelineRun struct {
	req    dto.RevealRequest
	resp   *dto.RevealResponse
	files  []entities.SecretFile
	logger *slog.Logger
	stage  values.Stage
}

// advance moves the run to next, refusing transitions the state machine forbids.
func (r *pipelineRun) advance(next values.Stage) error {
	if !r.stage.CanTransitionTo(next) {
		return fmt.Errorf("invalid stage transition %s -> %s", r.stage, next)
	}
	r.logger.Debug("stage transition", "from", r.stage, "to", next)
	r.stage = next
	return nil
}

type pipelineStep struct {
	run  func(ctx context.Context, r *pipelineRun) error
	name string
}

// Execute runs the pipeline.
// On failure the returned error is a *apperrors.StageError and the response stage is StageFailed.
func (uc *RevealSecretsUseCase) Execute(ctx context.Context, req dto.RevealRequest) (*dto.RevealResponse, error) {
	startTime := time.Now()

	if req.GPGKey != nil {
		defer req.GPGKey.Zero()
	}

	runID := values.NewRunID()
	run := &pipelineRun{
		req:    req,
		stage:  values.StageNotInstalled,
		logger: uc.logger.With("run_id", runID.String()),
		resp: &dto.RevealResponse{
			RunID:  runID,
			Binary: uc.installation.Binary,
		},
	}

	steps := []pipelineStep{
		{name: "install", run: uc.install},
		{name: "import key", run: uc.importKey},
		{name: "prepare source", run: uc.prepareSource},
		{name: "reveal", run: uc.reveal},
		{name: "publish outputs", run: uc.publish},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return uc.fail(run, step.name, err, startTime)
		}
		if err := step.run(ctx, run); err != nil {
			return uc.fail(run, step.name, err, startTime)
		}
	}

	run.resp.Stage = run.stage
	run.resp.Duration = time.Since(startTime)

	run.logger.Info("secrets revealed",
		"outputs", len(run.resp.Outputs),
		"installed", run.resp.Installed,
		"key_imported", run.resp.KeyImported,
		"duration", run.resp.Duration)

	return run.resp, nil
}

func (uc *RevealSecretsUseCase) fail(run *pipelineRun, step string, err error, startTime time.Time) (*dto.RevealResponse, error) {
	stageErr := apperrors.NewStageError(step, run.stage, err)
	run.logger.Debug("pipeline halted", "step", step, "stage", run.stage)
	run.stage = values.StageFailed
	run.resp.Stage = values.StageFailed
	run.resp.Duration = time.Since(startTime)
	return run.resp, stageErr
}

func (uc *RevealSecretsUseCase) install(ctx context.Context, r *pipelineRun) error {
	present, err := uc.installer.IsInstalled(uc.installation)
	if err != nil {
		return err
	}

	if !present {
		if err := r.advance(values.StageInstalling); err != nil {
			return err
		}
		installed, err := uc.installer.Ensure(ctx, uc.installation)
		if err != nil {
			return err
		}
		r.resp.Installed = installed
	} else {
		r.logger.Debug("git-secret already installed", "version", uc.installation.Version)
	}

	return r.advance(values.StageInstalled)
}

func (uc *RevealSecretsUseCase) importKey(ctx context.Context, r *pipelineRun) error {
	imported, err := uc.importer.Import(ctx, r.req.GPGKey)
	if err != nil {
		return err
	}
	r.resp.KeyImported = imported

	if imported {
		return r.advance(values.StageKeyImported)
	}
	return r.advance(values.StageKeyImportSkipped)
}

func (uc *RevealSecretsUseCase) prepareSource(ctx context.Context, r *pipelineRun) error {
	if err := uc.source.Prepare(ctx); err != nil {
		return err
	}
	return r.advance(values.StageSourceReady)
}

func (uc *RevealSecretsUseCase) reveal(ctx context.Context, r *pipelineRun) error {
	if err := uc.revealer.Reveal(ctx, uc.installation.Binary, uc.source); err != nil {
		return err
	}

	files, err := uc.revealer.Collect(uc.source)
	if err != nil {
		return err
	}
	r.files = files

	return r.advance(values.StageRevealed)
}

func (uc *RevealSecretsUseCase) publish(_ context.Context, r *pipelineRun) error {
	names, err := uc.revealer.Publish(r.files, uc.source.OutputPrefix())
	r.resp.Outputs = names
	if err != nil {
		return err
	}
	return r.advance(values.StageOutputsPublished)
}

// InstallUseCase installs the pinned tool without revealing anything.
type InstallUseCase struct {
	installer    *Installer
	installation entities.Installation
}

// NewInstallUseCase creates a new install use case.
func NewInstallUseCase(installer *Installer, installation entities.Installation) *InstallUseCase {
	return &InstallUseCase{
		installer:    installer,
		installation: installation,
	}
}

// Execute installs the tool if it is missing.
func (uc *InstallUseCase) Execute(ctx context.Context) (*dto.InstallResponse, error) {
	installed, err := uc.installer.Ensure(ctx, uc.installation)
	if err != nil {
		return nil, err
	}
	return &dto.InstallResponse{
		Binary:    uc.installation.Binary,
		Installed: installed,
	}, nil
}
