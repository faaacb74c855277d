package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"golang.org/x/sync/singleflight"
)

// LoadDeployment fetches verified source for an address and stores the
// resulting deployment in the repository
type LoadDeployment struct {
	repo        DeploymentRepository
	fetcher     SourceFetcher
	checker     CodeChecker
	outliner    SourceOutliner
	abiOutliner ABIOutliner
	sink        ProgressSink
	log         *slog.Logger
	chainID     uint64

	inflight singleflight.Group
}

// NewLoadDeployment creates a new LoadDeployment use case
func NewLoadDeployment(
	cfg *config.RuntimeConfig,
	repo DeploymentRepository,
	fetcher SourceFetcher,
	checker CodeChecker,
	outliner SourceOutliner,
	abiOutliner ABIOutliner,
	sink ProgressSink,
	log *slog.Logger,
) *LoadDeployment {
	var chainID uint64
	if cfg.Network != nil {
		chainID = cfg.Network.ChainID
	}
	return &LoadDeployment{
		repo:        repo,
		fetcher:     fetcher,
		checker:     checker,
		outliner:    outliner,
		abiOutliner: abiOutliner,
		sink:        sink,
		log:         log,
		chainID:     chainID,
	}
}

// Run loads address into the repository. parent, when set, is the deployment
// the address was discovered from (a proxy for its implementation).
// Concurrent calls for the same address share one fetch.
func (uc *LoadDeployment) Run(ctx context.Context, address string, parent *models.DeploymentInfo) (*models.DeploymentInfo, error) {
	address, err := domain.NormalizeAddress(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, address)
	}

	if existing, ok := uc.repo.GetDeployment(address); ok {
		return existing, nil
	}

	v, err, shared := uc.inflight.Do(address, func() (interface{}, error) {
		return uc.load(ctx, address, parent)
	})
	if shared {
		uc.log.Debug("joined in-flight load", "address", address)
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.DeploymentInfo), nil
}

func (uc *LoadDeployment) load(ctx context.Context, address string, parent *models.DeploymentInfo) (*models.DeploymentInfo, error) {
	if uc.checker != nil && uc.checker.Enabled() {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "checking",
			Message: "Checking code at " + address,
			Spinner: true,
		})
		hasCode, err := uc.checker.HasCode(ctx, address)
		if err != nil {
			// RPC trouble should not block reading verified source
			uc.log.Warn("code check failed", "address", address, "error", err)
		} else if !hasCode {
			uc.sink.OnProgress(ctx, ProgressEvent{Stage: "failed", Message: "No code at " + address})
			return nil, fmt.Errorf("%w: %s", domain.ErrNoContractCode, address)
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "fetching",
		Message: "Fetching verified source for " + address,
		Spinner: true,
	})

	source, err := uc.fetcher.FetchSource(ctx, uc.chainID, address)
	if err != nil {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: "failed", Message: err.Error()})
		return nil, err
	}

	deployment := uc.buildDeployment(address, source, parent)
	uc.repo.SaveDeployment(deployment)

	uc.log.Debug("deployment loaded",
		"address", address,
		"contract", deployment.EtherscanInfo.ContractName,
		"provider", deployment.Provider,
		"files", len(deployment.Sources),
	)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: fmt.Sprintf("Loaded %s (%s)", deployment.DisplayName(), address),
	})

	return deployment, nil
}

func (uc *LoadDeployment) buildDeployment(address string, source *models.VerifiedSource, parent *models.DeploymentInfo) *models.DeploymentInfo {
	code, sources := AssembleSources(source.Sources)

	deployment := &models.DeploymentInfo{
		Address:       address,
		ChainID:       source.ChainID,
		Type:          models.SingletonDeployment,
		Code:          code,
		Sources:       sources,
		EtherscanInfo: source.Info,
		Provider:      source.Provider,
	}
	if deployment.ChainID == 0 {
		deployment.ChainID = uc.chainID
	}

	if impl, err := domain.NormalizeAddress(source.Implementation); err == nil && impl != address {
		deployment.Type = models.ProxyDeployment
		deployment.Implementation = impl
	}

	if parent != nil {
		deployment.Context = parent.Address
	}

	deployment.Artifacts = uc.outliner.Outline(code, sources)

	if source.Info.ABI != "" {
		abiArtifacts, err := uc.abiOutliner.Outline(source.Info.ABI)
		if err != nil {
			uc.log.Debug("skipping ABI outline", "address", address, "error", err)
		} else {
			deployment.ABIArtifacts = abiArtifacts
		}
	}

	return deployment
}

// AssembleSources joins source files into the single buffer shown by the code
// editor. A lone file is used verbatim; several files are sorted by path and
// each is preceded by a "// File: <path>" header. The returned files record
// the line of their header.
func AssembleSources(files []models.SourceFile) (string, []models.SourceFile) {
	if len(files) == 0 {
		return "", nil
	}
	if len(files) == 1 {
		f := files[0]
		f.StartLine = 1
		return f.Content, []models.SourceFile{f}
	}

	sorted := make([]models.SourceFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var b strings.Builder
	line := 1
	for i := range sorted {
		if i > 0 {
			b.WriteString("\n")
			line++
		}
		sorted[i].StartLine = line
		b.WriteString("// File: " + sorted[i].Path + "\n")
		line++

		content := strings.TrimRight(sorted[i].Content, "\n")
		b.WriteString(content)
		b.WriteString("\n")
		line += strings.Count(content, "\n") + 1
	}

	return b.String(), sorted
}
