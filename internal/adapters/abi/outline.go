package abi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// Outliner lists the functions, events and errors of a contract ABI
type Outliner struct{}

// NewOutliner creates a new ABI outliner
func NewOutliner() *Outliner {
	return &Outliner{}
}

// Outline parses abiJSON and returns one artifact per entry, functions
// first, then events, then errors, each group sorted by signature.
// The artifacts carry no AST node since an ABI has no source position.
func (o *Outliner) Outline(abiJSON string) ([]*models.ContractArtifact, error) {
	if strings.TrimSpace(abiJSON) == "" {
		return nil, nil
	}

	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	var out []*models.ContractArtifact

	methods := make([]string, 0, len(parsed.Methods))
	for _, m := range parsed.Methods {
		methods = append(methods, m.Sig)
	}
	out = appendSorted(out, methods, models.ArtifactABIFunction)

	events := make([]string, 0, len(parsed.Events))
	for _, e := range parsed.Events {
		events = append(events, e.Sig)
	}
	out = appendSorted(out, events, models.ArtifactABIEvent)

	errs := make([]string, 0, len(parsed.Errors))
	for _, e := range parsed.Errors {
		errs = append(errs, e.Sig)
	}
	out = appendSorted(out, errs, models.ArtifactABIError)

	return out, nil
}

func appendSorted(out []*models.ContractArtifact, sigs []string, kind models.ArtifactKind) []*models.ContractArtifact {
	sort.Strings(sigs)
	for _, sig := range sigs {
		out = append(out, &models.ContractArtifact{Kind: kind, Name: sig})
	}
	return out
}

// Ensure the outliner implements the interface
var _ usecase.ABIOutliner = (*Outliner)(nil)
