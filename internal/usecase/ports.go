package usecase

import (
	"context"
	"net/url"

	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
)

// DeploymentRepository holds the deployments loaded into the viewer, keyed by
// lowercase address, together with the current selection
type DeploymentRepository interface {
	GetDeployment(address string) (*models.DeploymentInfo, bool)
	SaveDeployment(deployment *models.DeploymentInfo)
	// ListDeployments returns deployments in the order they were first saved
	ListDeployments() []*models.DeploymentInfo
	Addresses() []string
	SelectedDeployment() *models.DeploymentInfo
	SetSelectedDeployment(deployment *models.DeploymentInfo)
}

// DeploymentLoader loads a deployment into the repository
type DeploymentLoader interface {
	Run(ctx context.Context, address string, context *models.DeploymentInfo) (*models.DeploymentInfo, error)
}

// SourceFetcher retrieves verified source code from a block explorer
type SourceFetcher interface {
	FetchSource(ctx context.Context, chainID uint64, address string) (*models.VerifiedSource, error)
}

// CodeChecker checks whether bytecode is deployed at an address
type CodeChecker interface {
	// Enabled reports whether the checker can reach a node
	Enabled() bool
	HasCode(ctx context.Context, address string) (bool, error)
}

// SourceOutliner extracts declarations with source locations from the
// assembled code of a deployment
type SourceOutliner interface {
	Outline(code string, sources []models.SourceFile) []*models.ContractArtifact
}

// ABIOutliner lists the entries of a contract ABI
type ABIOutliner interface {
	Outline(abiJSON string) ([]*models.ContractArtifact, error)
}

// Router reads and rewrites the viewer URL
type Router interface {
	Query() url.Values
	Replace(query url.Values) error
	URL() string
}

// SourceSelector picks one source file of a deployment interactively
type SourceSelector interface {
	SelectSource(ctx context.Context, deployment *models.DeploymentInfo, prompt string) (*models.SourceFile, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}
