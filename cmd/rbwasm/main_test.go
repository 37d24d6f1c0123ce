package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rbwasm/internal/adapters/telemetry"
	"go.trai.ch/rbwasm/internal/app"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newProvider(t *testing.T, ctrl *gomock.Controller, deps app.Deps) (ComponentProvider, *mocks.MockLogger, *mocks.MockConfigLoader) {
	t.Helper()

	logger := mocks.NewMockLogger(ctrl)
	loader := mocks.NewMockConfigLoader(ctrl)
	deps.Logger = logger
	if deps.Tracer == nil {
		deps.Tracer = telemetry.NewNoOpTracer()
	}

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:          app.New(deps),
			Logger:       logger,
			ConfigLoader: loader,
		}, func() {}, nil
	}
	return provider, logger, loader
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider, _, _ := newProvider(t, ctrl, app.Deps{})

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "rbwasm version")
}

func TestRun_ProviderError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("graph cycle")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: graph cycle")
}

func TestRun_CommandErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider, logger, loader := newProvider(t, ctrl, app.Deps{})

	loader.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(func(_ string, base domain.Options) (domain.Options, error) {
		return base, nil
	})
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrMissingOutput)
	})

	exitCode := run(context.Background(), []string{"--no-verify"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

func TestRun_BuildFailureIsNotLoggedTwice(t *testing.T) {
	ctrl := gomock.NewController(t)

	factory := mocks.NewMockWorkspaceFactory(ctrl)
	ws := mocks.NewMockWorkspace(ctrl)
	stager := mocks.NewMockToolStager(ctrl)
	rec := mocks.NewMockTelemetry(ctrl)

	provider, logger, loader := newProvider(t, ctrl, app.Deps{
		Workspaces: factory,
		Stager:     stager,
		Telemetry:  rec,
	})

	root := t.TempDir()
	layout := domain.NewLayout(root)
	loader.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(func(_ string, base domain.Options) (domain.Options, error) {
		return base, nil
	})
	logger.EXPECT().SetVerbose(gomock.Any())
	factory.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ws, nil)
	ws.EXPECT().Layout().Return(layout).AnyTimes()
	ws.EXPECT().Close().Return(nil)
	stager.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Toolchain{}, domain.ErrToolchainInstallFailed)
	rec.EXPECT().Close().Return(nil)
	logger.EXPECT().Error(gomock.Any()).Times(1)

	out := filepath.Join(root, "ruby.wasm")
	exitCode := run(context.Background(), []string{"-o", out}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
