package selection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTool is returned by ParseTool for names that are not a tool
var ErrUnknownTool = errors.New("unknown tool")

// Tool is the active measurement tool
type Tool int

const (
	ToolNone Tool = iota
	ToolLine
	ToolHole
	ToolRegion
)

// Tools lists all tools in display order
var Tools = []Tool{ToolNone, ToolLine, ToolHole, ToolRegion}

// String returns the tool name as used by the UI and the API
func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "none"
	case ToolLine:
		return "line"
	case ToolHole:
		return "hole"
	case ToolRegion:
		return "region"
	default:
		return fmt.Sprintf("tool(%d)", int(t))
	}
}

// ParseTool converts a tool name into a Tool
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return ToolNone, nil
	case "line":
		return ToolLine, nil
	case "hole":
		return ToolHole, nil
	case "region":
		return ToolRegion, nil
	default:
		return ToolNone, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
}
