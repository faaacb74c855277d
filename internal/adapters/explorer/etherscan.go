package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// EtherscanClient fetches verified source through the Etherscan contract API
type EtherscanClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// etherscanResponse is the envelope of every Etherscan API response
type etherscanResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// etherscanSource is one entry of a getsourcecode result
type etherscanSource struct {
	models.EtherscanInfo
	SourceCode string `json:"SourceCode"`
}

// NewEtherscanClient creates a new Etherscan client
func NewEtherscanClient(cfg *config.RuntimeConfig, log *slog.Logger) *EtherscanClient {
	return &EtherscanClient{
		baseURL: cfg.ExplorerAPIURL,
		apiKey:  cfg.EtherscanAPIKey,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		log: log,
	}
}

// Name identifies the provider in errors
func (c *EtherscanClient) Name() string {
	return string(models.SourceEtherscan)
}

// FetchSource retrieves the verified source of address on chainID
func (c *EtherscanClient) FetchSource(ctx context.Context, chainID uint64, address string) (*models.VerifiedSource, error) {
	query := url.Values{}
	query.Set("chainid", strconv.FormatUint(chainID, 10))
	query.Set("module", "contract")
	query.Set("action", "getsourcecode")
	query.Set("address", address)
	if c.apiKey != "" {
		query.Set("apikey", c.apiKey)
	}

	endpoint := c.baseURL
	if strings.Contains(endpoint, "?") {
		endpoint += "&" + query.Encode()
	} else {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.log.Debug("etherscan request", "address", address, "chainId", chainID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query etherscan: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.ExplorerErr{
			Provider: c.Name(),
			Message:  strings.TrimSpace(string(body)),
			Status:   resp.StatusCode,
		}
	}

	var envelope etherscanResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode etherscan response: %w", err)
	}

	if envelope.Status != "1" {
		// Errors carry a human readable message in result
		var message string
		if err := json.Unmarshal(envelope.Result, &message); err != nil || message == "" {
			message = envelope.Message
		}
		return nil, domain.ExplorerErr{Provider: c.Name(), Message: message}
	}

	var results []etherscanSource
	if err := json.Unmarshal(envelope.Result, &results); err != nil {
		return nil, fmt.Errorf("failed to decode etherscan result: %w", err)
	}
	if len(results) == 0 || strings.TrimSpace(results[0].SourceCode) == "" {
		return nil, fmt.Errorf("%s: %w", c.Name(), domain.ErrNotVerified)
	}

	result := results[0]
	files, err := ParseSourceCode(result.SourceCode, result.ContractName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name(), err)
	}

	source := &models.VerifiedSource{
		Address:  address,
		ChainID:  chainID,
		Provider: models.SourceEtherscan,
		Info:     result.EtherscanInfo,
		Sources:  files,
	}
	if result.Proxy == "1" && result.Implementation != "" {
		source.Implementation = strings.ToLower(result.Implementation)
	}

	return source, nil
}

// ParseSourceCode splits the SourceCode field of an Etherscan result into
// files. Etherscan returns either a flat Solidity file, a JSON object of
// sources, or standard JSON input wrapped in an extra pair of braces.
func ParseSourceCode(raw, contractName string) ([]models.SourceFile, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{{") && strings.HasSuffix(raw, "}}") {
		raw = raw[1 : len(raw)-1]
	}

	if strings.HasPrefix(raw, "{") {
		var input struct {
			Sources map[string]struct {
				Content string `json:"content"`
			} `json:"sources"`
		}
		if err := json.Unmarshal([]byte(raw), &input); err == nil && len(input.Sources) > 0 {
			files := make([]models.SourceFile, 0, len(input.Sources))
			for path, src := range input.Sources {
				files = append(files, models.SourceFile{Path: path, Content: src.Content})
			}
			return files, nil
		}

		var sources map[string]struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal([]byte(raw), &sources); err != nil {
			return nil, fmt.Errorf("failed to parse multi-file source: %w", err)
		}
		files := make([]models.SourceFile, 0, len(sources))
		for path, src := range sources {
			files = append(files, models.SourceFile{Path: path, Content: src.Content})
		}
		return files, nil
	}

	name := contractName
	if name == "" {
		name = "Contract"
	}
	return []models.SourceFile{{Path: name + ".sol", Content: raw}}, nil
}

// Ensure the client implements the interface
var _ usecase.SourceFetcher = (*EtherscanClient)(nil)
