package viewer

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/trebuchet-org/treb-viewer/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/treb-viewer/internal/adapters/route"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

const (
	addrA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	addrB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

const counterCode = `pragma solidity ^0.8.20;

contract Counter {
    uint256 public count;
    function increment() public {
        count += 1;
    }
}
`

func located(kind models.ArtifactKind, name string, line, col int, children ...*models.ContractArtifact) *models.ContractArtifact {
	loc := models.SourceLocation{Line: line, Column: col}
	return &models.ContractArtifact{
		Kind:     kind,
		Name:     name,
		File:     "src/Counter.sol",
		Node:     &models.ASTNode{Loc: &models.SourceRange{Start: loc, End: loc}},
		Children: children,
	}
}

func counterDeployment(address string) *models.DeploymentInfo {
	return &models.DeploymentInfo{
		Address:       address,
		ChainID:       1,
		Type:          models.SingletonDeployment,
		Code:          counterCode,
		Sources:       []models.SourceFile{{Path: "src/Counter.sol", Content: counterCode, StartLine: 1}},
		EtherscanInfo: models.EtherscanInfo{ContractName: "Counter"},
		Provider:      models.SourceEtherscan,
		Artifacts: []*models.ContractArtifact{
			located(models.ArtifactFile, "src/Counter.sol", 1, 0,
				located(models.ArtifactContract, "Counter", 3, 0,
					located(models.ArtifactFunction, "increment", 5, 4),
				),
			),
		},
		ABIArtifacts: []*models.ContractArtifact{
			{Kind: models.ArtifactABIFunction, Name: "increment()"},
		},
	}
}

// fakeLoader stores a Counter deployment for every address
type fakeLoader struct {
	repo    usecase.DeploymentRepository
	proxies map[string]string
}

func (l *fakeLoader) Run(ctx context.Context, address string, parent *models.DeploymentInfo) (*models.DeploymentInfo, error) {
	d := counterDeployment(strings.ToLower(address))
	if impl, ok := l.proxies[d.Address]; ok {
		d.Type = models.ProxyDeployment
		d.Implementation = impl
	}
	if parent != nil {
		d.Context = parent.Address
	}
	l.repo.SaveDeployment(d)
	return d, nil
}

func newTestViewer(routeURL string, proxies map[string]string) *usecase.ContractViewer {
	cfg := &config.RuntimeConfig{RouteURL: routeURL, MaxConcurrentLoads: 2, HighlightStyle: "monokai"}
	if cfg.RouteURL == "" {
		cfg.RouteURL = "treb-viewer://contracts"
	}
	repo := deployments.NewMemoryRepository()
	router, err := route.NewURLRouter(cfg)
	if err != nil {
		panic(err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usecase.NewContractViewer(cfg, repo, &fakeLoader{repo: repo, proxies: proxies}, router, log)
}
