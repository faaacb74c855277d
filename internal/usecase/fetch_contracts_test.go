package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

func TestFetchContracts(t *testing.T) {
	ctx := context.Background()

	t.Run("loads each address once", func(t *testing.T) {
		loader := &MockDeploymentLoader{}
		loader.On("Run", mock.Anything, addrA, (*models.DeploymentInfo)(nil)).
			Return(&models.DeploymentInfo{Address: addrA}, nil).Once()
		loader.On("Run", mock.Anything, addrB, (*models.DeploymentInfo)(nil)).
			Return(&models.DeploymentInfo{Address: addrB}, nil).Once()

		uc := usecase.NewFetchContracts(loader, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.FetchContractsParams{
			Addresses: []string{addrA, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", addrB},
		})
		require.NoError(t, err)

		require.Len(t, result.Deployments, 2)
		assert.Equal(t, addrA, result.Deployments[0].Address)
		assert.Equal(t, addrB, result.Deployments[1].Address)
		assert.Empty(t, result.Failures)
		loader.AssertExpectations(t)
	})

	t.Run("invalid address fails before loading", func(t *testing.T) {
		loader := &MockDeploymentLoader{}
		uc := usecase.NewFetchContracts(loader, &MockProgressSink{})

		_, err := uc.Run(ctx, usecase.FetchContractsParams{Addresses: []string{addrA, "nope"}})
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
		loader.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no addresses", func(t *testing.T) {
		uc := usecase.NewFetchContracts(&MockDeploymentLoader{}, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.FetchContractsParams{})
		assert.Error(t, err)
	})

	t.Run("partial failure is reported", func(t *testing.T) {
		loader := &MockDeploymentLoader{}
		loader.On("Run", mock.Anything, addrA, (*models.DeploymentInfo)(nil)).Return(nil, domain.ErrNotVerified)
		loader.On("Run", mock.Anything, addrB, (*models.DeploymentInfo)(nil)).
			Return(&models.DeploymentInfo{Address: addrB}, nil)

		sink := &MockProgressSink{}
		uc := usecase.NewFetchContracts(loader, sink)
		result, err := uc.Run(ctx, usecase.FetchContractsParams{Addresses: []string{addrA, addrB}})
		require.NoError(t, err)

		assert.Len(t, result.Deployments, 1)
		assert.ErrorIs(t, result.Failures[addrA], domain.ErrNotVerified)
		assert.Len(t, sink.errors, 1)
	})

	t.Run("total failure", func(t *testing.T) {
		loader := &MockDeploymentLoader{}
		loader.On("Run", mock.Anything, addrA, (*models.DeploymentInfo)(nil)).Return(nil, domain.ErrNotVerified)

		uc := usecase.NewFetchContracts(loader, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.FetchContractsParams{Addresses: []string{addrA}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), addrA)
		assert.Empty(t, result.Deployments)
	})

	t.Run("follows proxies when asked", func(t *testing.T) {
		proxy := &models.DeploymentInfo{Address: addrA, Type: models.ProxyDeployment, Implementation: addrB}
		loader := &MockDeploymentLoader{}
		loader.On("Run", mock.Anything, addrA, (*models.DeploymentInfo)(nil)).Return(proxy, nil)
		loader.On("Run", mock.Anything, addrB, proxy).
			Return(&models.DeploymentInfo{Address: addrB, Context: addrA}, nil)

		uc := usecase.NewFetchContracts(loader, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.FetchContractsParams{
			Addresses:             []string{addrA},
			IncludeImplementation: true,
		})
		require.NoError(t, err)
		require.Len(t, result.Deployments, 2)
		assert.Equal(t, addrA, result.Deployments[1].Context)
	})
}
