package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// SourcifyClient fetches verified source from a Sourcify server
type SourcifyClient struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

type sourcifyFiles struct {
	Status string `json:"status"`
	Files  []struct {
		Name    string `json:"name"`
		Path    string `json:"path"`
		Content string `json:"content"`
	} `json:"files"`
}

// sourcifyMetadata is the part of the solc metadata.json the viewer uses
type sourcifyMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Output struct {
		ABI json.RawMessage `json:"abi"`
	} `json:"output"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
		EVMVersion        string            `json:"evmVersion"`
		Optimizer         struct {
			Enabled bool `json:"enabled"`
			Runs    int  `json:"runs"`
		} `json:"optimizer"`
	} `json:"settings"`
	Sources map[string]struct {
		License string `json:"license"`
	} `json:"sources"`
}

// NewSourcifyClient creates a new Sourcify client
func NewSourcifyClient(cfg *config.RuntimeConfig, log *slog.Logger) *SourcifyClient {
	return &SourcifyClient{
		baseURL: strings.TrimRight(cfg.SourcifyURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		log: log,
	}
}

// Name identifies the provider in errors
func (c *SourcifyClient) Name() string {
	return string(models.SourceSourcify)
}

// FetchSource retrieves the verified source of address on chainID
func (c *SourcifyClient) FetchSource(ctx context.Context, chainID uint64, address string) (*models.VerifiedSource, error) {
	endpoint := fmt.Sprintf("%s/files/any/%s/%s", c.baseURL, strconv.FormatUint(chainID, 10), address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.log.Debug("sourcify request", "address", address, "chainId", chainID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query sourcify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", c.Name(), domain.ErrNotVerified)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.ExplorerErr{
			Provider: c.Name(),
			Message:  strings.TrimSpace(string(body)),
			Status:   resp.StatusCode,
		}
	}

	var payload sourcifyFiles
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode sourcify response: %w", err)
	}

	source := &models.VerifiedSource{
		Address:  address,
		ChainID:  chainID,
		Provider: models.SourceSourcify,
	}

	for _, f := range payload.Files {
		if f.Name == "metadata.json" {
			applyMetadata(&source.Info, f.Content)
			continue
		}
		if !strings.HasSuffix(f.Name, ".sol") && !strings.HasSuffix(f.Name, ".vy") {
			continue
		}
		source.Sources = append(source.Sources, models.SourceFile{
			Path:    sourcePath(f.Path, f.Name),
			Content: f.Content,
		})
	}

	if len(source.Sources) == 0 {
		return nil, fmt.Errorf("%s: %w", c.Name(), domain.ErrNotVerified)
	}

	return source, nil
}

// sourcePath strips the repository prefix Sourcify puts in front of source paths
func sourcePath(path, name string) string {
	if idx := strings.Index(path, "/sources/"); idx != -1 {
		return path[idx+len("/sources/"):]
	}
	if path == "" {
		return name
	}
	return path
}

func applyMetadata(info *models.EtherscanInfo, raw string) {
	var meta sourcifyMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return
	}

	info.CompilerVersion = meta.Compiler.Version
	info.EVMVersion = meta.Settings.EVMVersion
	if meta.Settings.Optimizer.Enabled {
		info.OptimizationUsed = "1"
	} else {
		info.OptimizationUsed = "0"
	}
	info.Runs = strconv.Itoa(meta.Settings.Optimizer.Runs)
	if len(meta.Output.ABI) > 0 {
		info.ABI = string(meta.Output.ABI)
	}
	for path, name := range meta.Settings.CompilationTarget {
		info.ContractName = name
		if src, ok := meta.Sources[path]; ok {
			info.LicenseType = src.License
		}
	}
}

// Ensure the client implements the interface
var _ usecase.SourceFetcher = (*SourcifyClient)(nil)
