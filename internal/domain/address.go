package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValidAddress reports whether s is a 0x-prefixed 20-byte hex address.
// Checksums are not enforced.
func IsValidAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") {
		return false
	}
	return common.IsHexAddress(s)
}

// NormalizeAddress trims and lowercases an address, returning ErrInvalidAddress
// if it does not have the canonical format.
func NormalizeAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !IsValidAddress(s) {
		return "", ErrInvalidAddress
	}
	return strings.ToLower(s), nil
}

// ChecksumAddress returns the EIP-55 form of a valid address
func ChecksumAddress(s string) string {
	return common.HexToAddress(s).Hex()
}
