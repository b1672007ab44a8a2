package graph

import "fmt"

// ConnectionKind is the shape of a link from a node toward its parent(s)
type ConnectionKind int

const (
	// Vertical means the parent sits in the same column
	Vertical ConnectionKind = iota
	// BranchTo means the single parent sits in another column
	BranchTo
	// MergeFrom means a non-first parent is drawn from another column
	MergeFrom
)

func (k ConnectionKind) String() string {
	switch k {
	case Vertical:
		return "Vertical"
	case BranchTo:
		return "BranchTo"
	case MergeFrom:
		return "MergeFrom"
	default:
		return "Unknown"
	}
}

// Connection links a node toward one of its parents. Column is the target
// column for BranchTo and the source column for MergeFrom; it is unused
// for Vertical.
type Connection struct {
	Kind   ConnectionKind
	Column int
}

// VerticalConn returns a Vertical connection
func VerticalConn() Connection {
	return Connection{Kind: Vertical}
}

// BranchToConn returns a BranchTo connection targeting col
func BranchToConn(col int) Connection {
	return Connection{Kind: BranchTo, Column: col}
}

// MergeFromConn returns a MergeFrom connection sourced at col
func MergeFromConn(col int) Connection {
	return Connection{Kind: MergeFrom, Column: col}
}

func (c Connection) String() string {
	if c.Kind == Vertical {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", c.Kind, c.Column)
}

// Node is the laid out form of one commit
type Node struct {
	Commit          *Commit
	Column          int
	Connections     []Connection
	InCurrentBranch bool
}

// MergeSources returns the source columns of the node's MergeFrom entries,
// in parent order
func (n *Node) MergeSources() []int {
	var cols []int
	for _, c := range n.Connections {
		if c.Kind == MergeFrom {
			cols = append(cols, c.Column)
		}
	}
	return cols
}

// IsMerge reports whether the node carries MergeFrom connections
func (n *Node) IsMerge() bool {
	for _, c := range n.Connections {
		if c.Kind == MergeFrom {
			return true
		}
	}
	return false
}

// BranchTargets returns the target columns of BranchTo entries
func (n *Node) BranchTargets() []int {
	var cols []int
	for _, c := range n.Connections {
		if c.Kind == BranchTo {
			cols = append(cols, c.Column)
		}
	}
	return cols
}

// SyncStatus describes where a commit lives relative to the upstream branch
type SyncStatus int

const (
	// Synced exists both locally and on the remote
	Synced SyncStatus = iota
	// LocalOnly is ahead of the remote (unpushed)
	LocalOnly
	// RemoteOnly is behind the remote (not pulled)
	RemoteOnly
	// Diverged needs a merge or rebase
	Diverged
)

func (s SyncStatus) String() string {
	names := []string{"Synced", "LocalOnly", "RemoteOnly", "Diverged"}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}
