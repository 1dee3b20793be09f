package enums

import "fmt"

// PanelStatus tracks whether a panel is currently billable.
type PanelStatus string

const (
	PanelStatusActive   PanelStatus = "active"
	PanelStatusInactive PanelStatus = "inactive"
)

var validPanelStatuses = []PanelStatus{
	PanelStatusActive,
	PanelStatusInactive,
}

// String implements fmt.Stringer.
func (s PanelStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s PanelStatus) IsValid() bool {
	for _, candidate := range validPanelStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePanelStatus converts raw input into a PanelStatus.
func ParsePanelStatus(value string) (PanelStatus, error) {
	for _, candidate := range validPanelStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid panel status %q", value)
}
