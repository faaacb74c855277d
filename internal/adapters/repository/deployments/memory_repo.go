package deployments

import (
	"strings"
	"sync"

	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// MemoryRepository keeps the deployments loaded in the current session.
// Keys are lowercase addresses; the collection only grows.
type MemoryRepository struct {
	mu          sync.RWMutex
	deployments models.DeploymentsCollection
	order       []string
	selected    *models.DeploymentInfo
}

// NewMemoryRepository creates an empty repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		deployments: make(models.DeploymentsCollection),
	}
}

// GetDeployment retrieves a deployment by address
func (r *MemoryRepository) GetDeployment(address string) (*models.DeploymentInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.deployments[strings.ToLower(address)]
	return d, ok
}

// SaveDeployment stores a deployment under its lowercased address,
// replacing any previous entry for that address
func (r *MemoryRepository) SaveDeployment(deployment *models.DeploymentInfo) {
	key := strings.ToLower(deployment.Address)
	deployment.Address = key

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.deployments[key]; !exists {
		r.order = append(r.order, key)
	}
	r.deployments[key] = deployment
	if r.selected != nil && r.selected.Address == key {
		r.selected = deployment
	}
}

// ListDeployments returns deployments in the order they were first saved
func (r *MemoryRepository) ListDeployments() []*models.DeploymentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.DeploymentInfo, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.deployments[key])
	}
	return out
}

// Addresses returns the loaded addresses in the order they were first saved
func (r *MemoryRepository) Addresses() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// SelectedDeployment returns the selected deployment, or nil
func (r *MemoryRepository) SelectedDeployment() *models.DeploymentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selected
}

// SetSelectedDeployment changes the selection
func (r *MemoryRepository) SetSelectedDeployment(deployment *models.DeploymentInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = deployment
}

// Ensure the repository implements the interface
var _ usecase.DeploymentRepository = (*MemoryRepository)(nil)
