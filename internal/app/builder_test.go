package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/mkroot/internal/app"
	"go.trai.ch/mkroot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestNewComponents(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	components := app.NewComponents(&app.App{}, mockLogger)

	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.Equal(t, mockLogger, components.Logger)
}
