// Package analyzer performs seeded recursive-descent disassembly: a
// worklist walks an image.MemoryView starting from a set of seed
// addresses, decoding instructions, building basic blocks and their
// outgoing edges, and assigning blocks to function regions.
package analyzer

import "github.com/brackenfield/tc162core/decoder"

// EdgeKind tags the nature of a control-flow edge.
type EdgeKind int

const (
	EdgeFT EdgeKind = iota
	EdgeBR
	EdgeCBR
	EdgeCall // reserved: no decoded opcode currently emits this kind
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeFT:
		return "ft"
	case EdgeBR:
		return "br"
	case EdgeCBR:
		return "cbr"
	case EdgeCall:
		return "call"
	default:
		return "?"
	}
}

// Edge references a target block by address, never by pointer, so blocks
// and edges don't form a reference cycle.
type Edge struct {
	To   uint32
	Kind EdgeKind
}

// Block is a maximal straight-line run of decoded instructions.
type Block struct {
	Start uint32
	End   uint32 // exclusive
	Insns []decoder.Instruction
	Edges []Edge
}

// DiagnosticKind classifies a traversal anomaly.
type DiagnosticKind int

const (
	DiagNonExecutable DiagnosticKind = iota
	DiagOOB
	DiagLimit
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagNonExecutable:
		return "non_executable"
	case DiagOOB:
		return "oob"
	case DiagLimit:
		return "limit"
	default:
		return "?"
	}
}

// Diagnostic records a traversal anomaly that closed a block without
// aborting the run.
type Diagnostic struct {
	Kind    DiagnosticKind
	Address uint32
	Message string
}

// Function is a connected subgraph of blocks reached from one entry.
type Function struct {
	Entry  uint32
	Blocks []uint32 // member block start addresses, ascending
}

// Limits bounds a single block's growth so the worklist always
// terminates even over adversarial or corrupt input.
type Limits struct {
	MaxInstructions int
	MaxBytes        int
}

// Result is the analyzer's output: basic blocks keyed by start address,
// the function assignment, and any diagnostics recorded along the way.
type Result struct {
	Blocks      map[uint32]*Block
	Entries     []uint32 // seeds, ascending, deduplicated
	Functions   []*Function
	Diagnostics []Diagnostic
	Cancelled   bool
}
