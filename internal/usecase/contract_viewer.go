package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// RouteParam is the viewer URL query parameter holding loaded addresses
const RouteParam = "address"

// LoadOutcome describes what a load request did
type LoadOutcome int

const (
	// OutcomeSkipped means nothing was loaded: empty input or already loaded
	OutcomeSkipped LoadOutcome = iota
	// OutcomeInvalid means the input was not a valid address
	OutcomeInvalid
	// OutcomeLoaded means the deployment was fetched and stored
	OutcomeLoaded
	// OutcomeFailed means the load was attempted and failed
	OutcomeFailed
)

func (o LoadOutcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeLoaded:
		return "loaded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ContractViewer is the application state behind the viewer: the status
// line, the code-peek location and the load bookkeeping. Deployments and the
// selection live in the DeploymentRepository. It is safe for concurrent use.
//
// Every load is tagged with a request token; only the most recently started
// load writes the final status, so a slow, superseded load cannot overwrite
// the status of a newer one.
type ContractViewer struct {
	repo          DeploymentRepository
	loader        DeploymentLoader
	router        Router
	log           *slog.Logger
	maxConcurrent int

	// routeMu serializes route rewrites so an older address list is never
	// written over a newer one
	routeMu sync.Mutex

	mu         sync.Mutex
	status     string
	peek       models.SourceLocation
	hasPeek    bool
	latest     uint64
	pending    int
	loadErrors map[string]error
}

// NewContractViewer creates a new ContractViewer use case
func NewContractViewer(
	cfg *config.RuntimeConfig,
	repo DeploymentRepository,
	loader DeploymentLoader,
	router Router,
	log *slog.Logger,
) *ContractViewer {
	maxConcurrent := cfg.MaxConcurrentLoads
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &ContractViewer{
		repo:          repo,
		loader:        loader,
		router:        router,
		log:           log,
		maxConcurrent: maxConcurrent,
		loadErrors:    make(map[string]error),
	}
}

// TryLoadAddress validates raw input and loads it unless already present.
// Invalid non-empty input only sets the status. When invalidateRoute is set,
// a successful load rewrites the route.
func (v *ContractViewer) TryLoadAddress(ctx context.Context, raw string, invalidateRoute bool) LoadOutcome {
	raw = strings.TrimSpace(raw)
	if !domain.IsValidAddress(raw) {
		if raw == "" {
			return OutcomeSkipped
		}
		v.setStatus(domain.InvalidAddressStatus(raw))
		return OutcomeInvalid
	}

	address := strings.ToLower(raw)
	if _, ok := v.repo.GetDeployment(address); ok {
		return OutcomeSkipped
	}

	outcome := v.TryLoadContract(ctx, address, nil)
	if outcome == OutcomeLoaded && invalidateRoute {
		v.UpdateRoute()
	}
	return outcome
}

// TryLoadContract loads address through the store and reports the result in
// the status line. Errors never propagate to the caller.
func (v *ContractViewer) TryLoadContract(ctx context.Context, address string, parent *models.DeploymentInfo) LoadOutcome {
	token := v.beginLoad()

	_, err := v.loader.Run(ctx, address, parent)

	v.finishLoad(token, address, err)
	if err != nil {
		return OutcomeFailed
	}
	return OutcomeLoaded
}

// LoadImplementation loads the implementation behind a proxy deployment with
// the proxy as context. It is a user action, so the route is rewritten.
func (v *ContractViewer) LoadImplementation(ctx context.Context, proxy *models.DeploymentInfo) LoadOutcome {
	if proxy == nil || !proxy.IsProxy() {
		return OutcomeSkipped
	}
	address := strings.ToLower(proxy.Implementation)
	if _, ok := v.repo.GetDeployment(address); ok {
		return OutcomeSkipped
	}

	outcome := v.TryLoadContract(ctx, address, proxy)
	if outcome == OutcomeLoaded {
		v.UpdateRoute()
	}
	return outcome
}

// UpdateRoute replaces the route query with the comma-joined list of every
// loaded address. Nothing happens while the collection is empty.
func (v *ContractViewer) UpdateRoute() {
	v.routeMu.Lock()
	defer v.routeMu.Unlock()

	addresses := v.repo.Addresses()
	if len(addresses) == 0 {
		return
	}

	query := url.Values{}
	query.Set(RouteParam, strings.Join(addresses, ","))
	if err := v.router.Replace(query); err != nil {
		v.log.Warn("failed to update route", "error", err)
	}
}

// RouteAddresses returns the raw addresses listed in the route
func (v *ContractViewer) RouteAddresses() []string {
	raw := v.router.Query().Get(RouteParam)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// Mount loads every address listed in the route without rewriting it.
// Loads run concurrently; a failure is recorded for its address and never
// stops the others. onDone, if set, is called after each attempt.
func (v *ContractViewer) Mount(ctx context.Context, onDone func(address string, outcome LoadOutcome)) {
	var g errgroup.Group
	g.SetLimit(v.maxConcurrent)

	for _, raw := range v.RouteAddresses() {
		g.Go(func() error {
			outcome := v.TryLoadAddress(ctx, raw, false)
			if outcome == OutcomeFailed {
				v.log.Warn("failed to load route address", "address", raw)
			}
			if onDone != nil {
				onDone(raw, outcome)
			}
			return nil
		})
	}

	_ = g.Wait()
}

// Select handles a tree selection. A different contract becomes the selected
// deployment; an artifact with a source location moves the code-peek there.
// Artifacts without a location leave the code-peek untouched.
func (v *ContractViewer) Select(contract *models.DeploymentInfo, artifact *models.ContractArtifact) {
	if contract == nil || contract.Address == "" {
		v.log.Warn("missing contract")
		return
	}

	if selected := v.repo.SelectedDeployment(); selected == nil || selected.Address != contract.Address {
		v.repo.SetSelectedDeployment(contract)
	}

	if loc, ok := artifact.Location(); ok {
		v.mu.Lock()
		v.peek = loc
		v.hasPeek = true
		v.mu.Unlock()
	}
}

// CodePeek returns the position the code editor should reveal. The column is
// 1-indexed; ok is false until a located artifact has been selected.
func (v *ContractViewer) CodePeek() (line, column int, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.hasPeek {
		return 0, 0, false
	}
	return v.peek.Line, v.peek.Column + 1, true
}

// Status returns the current status line
func (v *ContractViewer) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Pending returns the number of loads in flight
func (v *ContractViewer) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

// LoadErrors returns the last failure per address that has not loaded since
func (v *ContractViewer) LoadErrors() map[string]error {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]error, len(v.loadErrors))
	for k, err := range v.loadErrors {
		out[k] = err
	}
	return out
}

// Deployments returns the loaded deployments in load order
func (v *ContractViewer) Deployments() []*models.DeploymentInfo {
	return v.repo.ListDeployments()
}

// Selected returns the selected deployment, if any
func (v *ContractViewer) Selected() *models.DeploymentInfo {
	return v.repo.SelectedDeployment()
}

// RouteURL returns the current viewer URL
func (v *ContractViewer) RouteURL() string {
	return v.router.URL()
}

func (v *ContractViewer) setStatus(status string) {
	v.mu.Lock()
	v.status = status
	v.mu.Unlock()
}

func (v *ContractViewer) beginLoad() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.latest++
	v.pending++
	v.status = domain.StatusLoading
	return v.latest
}

func (v *ContractViewer) finishLoad(token uint64, address string, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending--

	key := strings.ToLower(address)
	if err != nil {
		v.loadErrors[key] = err
		v.log.Warn("failed to load contract", "address", address, "error", err)
	} else {
		delete(v.loadErrors, key)
	}

	if token != v.latest {
		v.log.Debug("ignoring status of superseded load", "address", address, "token", token, "latest", v.latest)
		return
	}

	if err != nil {
		v.status = domain.LoadFailedStatus(err)
	} else {
		v.status = domain.StatusLoaded
	}
}
