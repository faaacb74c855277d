package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockDeploymentLoader is a mock implementation of DeploymentLoader
type MockDeploymentLoader struct {
	mock.Mock
}

func (m *MockDeploymentLoader) Run(ctx context.Context, address string, parent *models.DeploymentInfo) (*models.DeploymentInfo, error) {
	args := m.Called(ctx, address, parent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentInfo), args.Error(1)
}

// loaderFunc adapts a function to DeploymentLoader
type loaderFunc func(ctx context.Context, address string, parent *models.DeploymentInfo) (*models.DeploymentInfo, error)

func (f loaderFunc) Run(ctx context.Context, address string, parent *models.DeploymentInfo) (*models.DeploymentInfo, error) {
	return f(ctx, address, parent)
}

// MockSourceFetcher is a mock implementation of SourceFetcher
type MockSourceFetcher struct {
	mock.Mock
}

func (m *MockSourceFetcher) FetchSource(ctx context.Context, chainID uint64, address string) (*models.VerifiedSource, error) {
	args := m.Called(ctx, chainID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerifiedSource), args.Error(1)
}

// MockCodeChecker is a mock implementation of CodeChecker
type MockCodeChecker struct {
	mock.Mock
}

func (m *MockCodeChecker) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockCodeChecker) HasCode(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

// stubOutliner returns a fixed outline
type stubOutliner struct {
	artifacts []*models.ContractArtifact
}

func (s stubOutliner) Outline(code string, sources []models.SourceFile) []*models.ContractArtifact {
	return s.artifacts
}

// stubABIOutliner returns a fixed ABI outline or error
type stubABIOutliner struct {
	artifacts []*models.ContractArtifact
	err       error
}

func (s stubABIOutliner) Outline(abiJSON string) ([]*models.ContractArtifact, error) {
	return s.artifacts, s.err
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {}

func (m *MockProgressSink) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

func (m *MockProgressSink) stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Stage)
	}
	return out
}
