package render

import "github.com/trebuchet-org/treb-viewer/internal/usecase"

type Renderer[T any] interface {
	Render(result T) error
}

// FetchRenderer adapts ContractRenderer to a fixed output format
type FetchRenderer struct {
	contracts *ContractRenderer
	format    string
}

// NewFetchRenderer creates a renderer for fetch results
func NewFetchRenderer(contracts *ContractRenderer, format string) *FetchRenderer {
	return &FetchRenderer{contracts: contracts, format: format}
}

func (r *FetchRenderer) Render(result *usecase.FetchContractsResult) error {
	return r.contracts.RenderResult(result, r.format)
}

var _ Renderer[*usecase.FetchContractsResult] = (*FetchRenderer)(nil)
