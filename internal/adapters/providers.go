package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/treb-viewer/internal/adapters/abi"
	"github.com/trebuchet-org/treb-viewer/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-viewer/internal/adapters/explorer"
	"github.com/trebuchet-org/treb-viewer/internal/adapters/interactive"
	"github.com/trebuchet-org/treb-viewer/internal/adapters/progress"
	"github.com/trebuchet-org/treb-viewer/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/treb-viewer/internal/adapters/route"
	"github.com/trebuchet-org/treb-viewer/internal/adapters/solidity"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// RepositorySet provides the in-memory deployment store
var RepositorySet = wire.NewSet(
	deployments.NewMemoryRepository,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.MemoryRepository)),
)

// ExplorerSet provides verified source lookup, Etherscan first, then Sourcify
var ExplorerSet = wire.NewSet(
	explorer.NewSourceFetcher,
	wire.Bind(new(usecase.SourceFetcher), new(*explorer.FallbackFetcher)),
)

// OutlineSet provides source and ABI outliners
var OutlineSet = wire.NewSet(
	solidity.NewOutliner,
	wire.Bind(new(usecase.SourceOutliner), new(*solidity.Outliner)),

	abi.NewOutliner,
	wire.Bind(new(usecase.ABIOutliner), new(*abi.Outliner)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.CodeChecker), new(*blockchain.CheckerAdapter)),
)

// RouteSet provides the viewer route
var RouteSet = wire.NewSet(
	route.NewURLRouter,
	wire.Bind(new(usecase.Router), new(*route.URLRouter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.SourceSelector), new(*interactive.SelectorAdapter)),
)

// ProgressSet provides progress reporting
var ProgressSet = wire.NewSet(
	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	ExplorerSet,
	OutlineSet,
	BlockchainSet,
	RouteSet,
	InteractiveSet,
	ProgressSet,
)
