package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	AgentID  ID
	SourceID ID
	ReportID ID
)

// String conversions for domain IDs
func (id AgentID) String() string  { return ID(id).String() }
func (id SourceID) String() string { return ID(id).String() }
func (id ReportID) String() string { return ID(id).String() }

// ParseAgentID parses a string into AgentID
func ParseAgentID(s string) (AgentID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("agent ID cannot be empty")
	}
	return AgentID(s), nil
}

// ParseSourceID parses a string into SourceID
func ParseSourceID(s string) (SourceID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("source ID cannot be empty")
	}
	return SourceID(s), nil
}

// ParseReportID parses a string into ReportID
func ParseReportID(s string) (ReportID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("report ID cannot be empty")
	}
	return ReportID(s), nil
}
