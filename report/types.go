// Package report assembles analyzer output and an image's segment list
// into the finalized, deterministically-ordered Report, and projects it
// to the JSON document renderers consume.
package report

import (
	"github.com/brackenfield/tc162core/analyzer"
)

// LabelEntry is one row of an imported or exported label map.
type LabelEntry struct {
	Addr uint32
	Name string
}

// SegmentInfo describes one mapped region of the image.
type SegmentInfo struct {
	Name  string
	Base  uint32
	End   uint32
	Perms string
	Kind  string
}

// InsnInfo is one pre-rendered instruction line within a block.
type InsnInfo struct {
	Addr     uint32
	BytesHex string
	Text     string
}

// EdgeRef is an outgoing edge from a block, referencing its target by
// address.
type EdgeRef struct {
	Kind string
	To   uint32
}

// BlockInfo is a finalized, labeled basic block.
type BlockInfo struct {
	Start uint32
	End   uint32
	Label string
	Insns []InsnInfo
	Edges []EdgeRef
}

// FunctionInfo is a finalized function region.
type FunctionInfo struct {
	Entry  uint32
	Blocks []uint32
}

// XrefInfo is one flow cross-reference.
type XrefInfo struct {
	From uint32
	To   uint32
	Kind string
}

// DiagnosticInfo is a finalized, string-kinded diagnostic.
type DiagnosticInfo struct {
	Kind    string
	Addr    uint32
	Message string
}

// Report is the complete, deterministically-ordered analysis result.
// Every slice is sorted ascending by address (xrefs with equal source are
// ordered by target; diagnostics at one address keep the order they were
// recorded in) so that two runs over identical inputs produce identical
// Reports.
type Report struct {
	Segments    []SegmentInfo
	Blocks      []BlockInfo
	Functions   []FunctionInfo
	Xrefs       []XrefInfo
	Labels      []LabelEntry
	Diagnostics []DiagnosticInfo
	Cancelled   bool

	labels map[uint32]string // internal working map backing Labels/ExportLabels
}

// ExportLabels returns the Report's current address->name map as a
// label-map sequence, ascending by address.
func (r *Report) ExportLabels() []LabelEntry {
	return append([]LabelEntry{}, r.Labels...)
}

func diagKind(k analyzer.DiagnosticKind) string { return k.String() }
