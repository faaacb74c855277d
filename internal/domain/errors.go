package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNotVerified is returned when an explorer has no verified source for an address
	ErrNotVerified = errors.New("contract source code not verified")

	// ErrNoContractCode is returned when there is no deployed bytecode at an address
	ErrNoContractCode = errors.New("no contract code at address")

	// ErrExplorer is returned when an explorer API responds with an error
	ErrExplorer = errors.New("explorer error")
)

// ExplorerErr wraps an explorer API failure with the provider and its message
type ExplorerErr struct {
	Provider string
	Message  string
	Status   int
}

func (e ExplorerErr) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Provider, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e ExplorerErr) Unwrap() error {
	return ErrExplorer
}
