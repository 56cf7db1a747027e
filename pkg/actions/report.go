package actions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/graphwalk/pkg/analysis"
	"github.com/matzehuels/graphwalk/pkg/animate"
	"github.com/matzehuels/graphwalk/pkg/coloring"
	"github.com/matzehuels/graphwalk/pkg/traverse"
)

// Notices shown instead of, or after, a result.
const (
	NoticeAnimationBusy   = "Animation is already running. Wait until it finishes."
	NoticeColoringBlocked = "Wait for any running animation to finish before coloring."
	NoticeEmptyGraph      = "Graph has no nodes."
)

// Report is implemented by every action result.
type Report interface {
	Lines() []string
}

// TraversalReport is the result of RunBFS and RunDFS.
type TraversalReport struct {
	Mode      traverse.Mode    `json:"mode"`
	Start     int              `json:"start"`
	Result    traverse.Result  `json:"result"`
	SessionID string           `json:"session_id,omitempty"` // empty when not animated
	Session   *animate.Session `json:"-"`
	Notice    string           `json:"notice,omitempty"`
}

// Lines implements Report.
func (r TraversalReport) Lines() []string {
	nodes := r.Result.Nodes()
	lines := []string{
		fmt.Sprintf("=== %s ===", r.Mode),
		fmt.Sprintf("%s order: %s (%d nodes)", r.Mode, formatNodes(nodes), len(nodes)),
	}
	if r.Notice != "" {
		lines = append(lines, r.Notice)
	}
	return lines
}

// ColoringReport is the result of RunColoring.
type ColoringReport struct {
	Assignment coloring.Assignment `json:"assignment,omitempty"`
	NumColors  int                 `json:"num_colors"`
	Notice     string              `json:"notice,omitempty"`
}

// Lines implements Report. A blocked coloring reports only the notice.
func (r ColoringReport) Lines() []string {
	if r.Notice == NoticeColoringBlocked {
		return []string{r.Notice}
	}
	lines := make([]string, 0, len(r.Assignment)+3)
	lines = append(lines, "=== Greedy Coloring ===", fmt.Sprintf("Colors used: %d", r.NumColors))
	for node, c := range r.Assignment {
		lines = append(lines, fmt.Sprintf("Node %d: Color %d", node, c))
	}
	if r.Notice != "" {
		lines = append(lines, r.Notice)
	}
	return lines
}

// CycleReport is the result of CheckCycle.
type CycleReport struct {
	HasCycle bool  `json:"has_cycle"`
	Cycle    []int `json:"cycle,omitempty"` // one witness cycle
}

// Lines implements Report.
func (r CycleReport) Lines() []string {
	return []string{
		"=== Cycle Check ===",
		fmt.Sprintf("Graph has cycle: %t", r.HasCycle),
	}
}

// CliqueReport is the result of CheckClique.
type CliqueReport struct {
	Clique analysis.Clique `json:"clique"`
	Notice string          `json:"notice,omitempty"`
}

// Lines implements Report.
func (r CliqueReport) Lines() []string {
	lines := []string{
		"=== Clique Check ===",
		fmt.Sprintf("Maximum clique size: %d", r.Clique.Size()),
		fmt.Sprintf("Clique nodes: %s", formatNodes(r.Clique)),
	}
	if r.Notice != "" {
		lines = append(lines, r.Notice)
	}
	return lines
}

// formatNodes renders ids as "[0, 1, 2]".
func formatNodes(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
