package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/mkroot/internal/adapters/telemetry"
	"go.trai.ch/mkroot/internal/adapters/telemetry/progrock"
	"go.trai.ch/mkroot/internal/app"
	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/mkroot/internal/core/ports/mocks"
	"go.trai.ch/mkroot/internal/engine/builder"
	"go.uber.org/mock/gomock"
)

func newProvider(t *testing.T) (ComponentProvider, *mocks.MockConfigLoader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	b := builder.NewBuilder(
		mocks.NewMockTreeFactory(ctrl),
		mocks.NewMockVerifier(ctrl),
		mockLogger,
		telemetry.NewNoOpTracer(),
		progrock.New(),
	)
	opener := func(string) (ports.BuildInfoStore, error) { return mocks.NewMockBuildInfoStore(ctrl), nil }
	application := app.New(
		mockLoader,
		mocks.NewMockPackageDatabase(ctrl),
		b,
		mocks.NewMockHasher(ctrl),
		opener,
		mocks.NewMockExecutor(ctrl),
		mockLogger,
		progrock.New(),
	)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}
	return provider, mockLoader, mockLogger
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider, _, _ := newProvider(t)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "mkroot version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	provider, mockLoader, mockLogger := newProvider(t)

	mockLoader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, domain.ErrConfigReadFailed)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"build", "-t", t.TempDir()}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
