package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
)

// FetchContractsParams contains parameters for fetching contracts
type FetchContractsParams struct {
	Addresses []string

	// Also load the implementation behind proxies
	IncludeImplementation bool
}

// FetchContractsResult contains the loaded deployments and per-address failures
type FetchContractsResult struct {
	Deployments []*models.DeploymentInfo
	Failures    map[string]error
}

// FetchContracts loads contracts outside the interactive viewer
type FetchContracts struct {
	loader DeploymentLoader
	sink   ProgressSink
}

// NewFetchContracts creates a new FetchContracts use case
func NewFetchContracts(loader DeploymentLoader, sink ProgressSink) *FetchContracts {
	return &FetchContracts{
		loader: loader,
		sink:   sink,
	}
}

// Run loads every requested address. Invalid addresses are rejected before
// anything is fetched; a failed load is recorded and the rest continue.
func (uc *FetchContracts) Run(ctx context.Context, params FetchContractsParams) (*FetchContractsResult, error) {
	addresses := make([]string, 0, len(params.Addresses))
	for _, raw := range params.Addresses {
		address, err := domain.NormalizeAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, raw)
		}
		addresses = append(addresses, address)
	}
	addresses = lo.Uniq(addresses)
	if len(addresses) == 0 {
		return nil, fmt.Errorf("no addresses given")
	}

	result := &FetchContractsResult{
		Failures: make(map[string]error),
	}
	seen := make(map[string]bool)

	load := func(address string, parent *models.DeploymentInfo) *models.DeploymentInfo {
		if seen[address] {
			return nil
		}
		seen[address] = true

		deployment, err := uc.loader.Run(ctx, address, parent)
		if err != nil {
			result.Failures[address] = err
			uc.sink.Error(fmt.Sprintf("%s: %v", address, err))
			return nil
		}
		result.Deployments = append(result.Deployments, deployment)
		return deployment
	}

	for i, address := range addresses {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "loading",
			Current: i + 1,
			Total:   len(addresses),
			Message: "Loading " + address,
			Spinner: true,
		})

		deployment := load(address, nil)
		if deployment != nil && params.IncludeImplementation && deployment.IsProxy() {
			load(strings.ToLower(deployment.Implementation), deployment)
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: fmt.Sprintf("Loaded %d contract(s)", len(result.Deployments)),
	})

	if len(result.Deployments) == 0 {
		return result, fmt.Errorf("failed to load any contract: %s", summarizeFailures(result.Failures))
	}

	return result, nil
}

func summarizeFailures(failures map[string]error) string {
	keys := lo.Keys(failures)
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, failures[k]))
	}
	return strings.Join(parts, "; ")
}
