package domain

import "fmt"

// Status messages shown in the viewer footer
const (
	StatusIdle    = ""
	StatusLoading = "loading..."
	StatusLoaded  = "loaded"
)

// LoadFailedStatus formats the status for a failed contract load
func LoadFailedStatus(err error) string {
	return fmt.Sprintf("failed to load contract\n%v", err)
}

// InvalidAddressStatus formats the status for malformed address input
func InvalidAddressStatus(raw string) string {
	return "invalid address format: " + raw
}
