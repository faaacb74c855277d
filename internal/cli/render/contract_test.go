package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

func counterDeployment() *models.DeploymentInfo {
	return &models.DeploymentInfo{
		Address:  "0x1111111111111111111111111111111111111111",
		ChainID:  1,
		Type:     models.ProxyDeployment,
		Provider: models.SourceEtherscan,
		Code:     "// File: src/Counter.sol\ncontract Counter {\n}\n",
		Sources: []models.SourceFile{
			{Path: "src/Counter.sol", Content: "contract Counter {\n  uint256 n;\n}\n", StartLine: 1},
			{Path: "src/Lib.sol", Content: "library Lib {}", StartLine: 5},
		},
		EtherscanInfo: models.EtherscanInfo{
			ContractName:     "Counter",
			CompilerVersion:  "v0.8.24+commit.e11b9ed9",
			OptimizationUsed: "1",
			Runs:             "200",
			EVMVersion:       "Default",
			LicenseType:      "MIT",
		},
		Implementation: "0x2222222222222222222222222222222222222222",
	}
}

func TestContractRenderer_RenderContract(t *testing.T) {
	var buf bytes.Buffer
	NewContractRenderer(&buf, false).RenderContract(counterDeployment())
	out := buf.String()

	assert.Contains(t, out, "Contract: Counter")
	assert.Contains(t, out, "0x1111111111111111111111111111111111111111")
	assert.Contains(t, out, "Etherscan")
	assert.Contains(t, out, "Proxy")
	assert.Contains(t, out, "0x2222222222222222222222222222222222222222")
	assert.Contains(t, out, "enabled (200 runs)")
	assert.Contains(t, out, "MIT")
	assert.NotContains(t, out, "EVM Version")
	assert.Contains(t, out, "Source Files (2):")
	assert.Contains(t, out, "src/Counter.sol (3 lines)")
	assert.Contains(t, out, "src/Lib.sol (1 lines)")
	assert.NotContains(t, out, "\x1b[")
}

func TestContractRenderer_RenderResult(t *testing.T) {
	result := &usecase.FetchContractsResult{
		Deployments: []*models.DeploymentInfo{counterDeployment()},
		Failures: map[string]error{
			"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb": errors.New("not verified"),
			"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa": errors.New("timeout"),
		},
	}

	t.Run("text lists failures in address order", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewContractRenderer(&buf, false).RenderResult(result, FormatText))

		out := buf.String()
		a := strings.Index(out, "0xaaaa")
		b := strings.Index(out, "0xbbbb")
		require.NotEqual(t, -1, a)
		require.NotEqual(t, -1, b)
		assert.Less(t, a, b)
		assert.Contains(t, out, "Loaded 1 contract(s)")
		assert.Contains(t, out, "❌")
		assert.Contains(t, out, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa: timeout")
		assert.Contains(t, out, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb: not verified")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewContractRenderer(&buf, false).RenderResult(result, FormatJSON))

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "0x1111111111111111111111111111111111111111", decoded[0]["address"])
		assert.Equal(t, "etherscan", decoded[0]["provider"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewContractRenderer(&buf, false).RenderResult(result, FormatYAML))

		out := buf.String()
		assert.Contains(t, out, "address:")
		assert.Contains(t, out, "0x1111111111111111111111111111111111111111")
		assert.Contains(t, out, "contractName: Counter")
		assert.Contains(t, out, "path: src/Lib.sol")
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewContractRenderer(&buf, false).RenderResult(result, "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
		assert.Empty(t, buf.String())
	})
}

func TestContractRenderer_RenderSource(t *testing.T) {
	var buf bytes.Buffer
	NewContractRenderer(&buf, false).RenderSource(&models.SourceFile{Path: "src/Lib.sol", Content: "library Lib {}"})

	assert.Equal(t, "\n// src/Lib.sol\nlibrary Lib {}\n", buf.String())
}

func TestOptimizerSummary(t *testing.T) {
	tests := []struct {
		name string
		info models.EtherscanInfo
		want string
	}{
		{"enabled with runs", models.EtherscanInfo{OptimizationUsed: "1", Runs: "999"}, "enabled (999 runs)"},
		{"enabled without runs", models.EtherscanInfo{OptimizationUsed: "true"}, "enabled"},
		{"disabled", models.EtherscanInfo{OptimizationUsed: "0", Runs: "200"}, "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, optimizerSummary(tt.info))
		})
	}
}
