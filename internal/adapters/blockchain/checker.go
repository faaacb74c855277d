package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// CodeReader is the part of ethclient the checker needs
type CodeReader interface {
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// CheckerAdapter checks deployed bytecode over JSON-RPC using ethclient.
// It connects lazily on first use and is disabled without an RPC URL.
type CheckerAdapter struct {
	rpcURL string
	log    *slog.Logger

	once    sync.Once
	client  CodeReader
	dialErr error
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *CheckerAdapter {
	var rpcURL string
	if cfg.Network != nil {
		rpcURL = cfg.Network.RPCURL
	}
	return &CheckerAdapter{
		rpcURL: rpcURL,
		log:    log,
	}
}

// NewCheckerAdapterWithClient creates a checker over an existing client
func NewCheckerAdapterWithClient(client CodeReader, log *slog.Logger) *CheckerAdapter {
	c := &CheckerAdapter{rpcURL: "client", client: client, log: log}
	c.once.Do(func() {})
	return c
}

// Enabled reports whether an RPC endpoint is configured
func (c *CheckerAdapter) Enabled() bool {
	return c.rpcURL != ""
}

// HasCode reports whether a contract exists at the given address
func (c *CheckerAdapter) HasCode(ctx context.Context, address string) (bool, error) {
	if !c.Enabled() {
		return false, fmt.Errorf("no RPC endpoint configured")
	}

	c.once.Do(func() {
		client, err := ethclient.DialContext(ctx, c.rpcURL)
		if err != nil {
			c.dialErr = fmt.Errorf("failed to connect to RPC: %w", err)
			return
		}
		c.client = client
	})
	if c.dialErr != nil {
		return false, c.dialErr
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := c.client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}

	c.log.Debug("checked code", "address", address, "size", len(code))

	return len(code) > 0, nil
}

// Ensure the adapter implements the interface
var _ usecase.CodeChecker = (*CheckerAdapter)(nil)
