package analyzer

import (
	"sort"

	"github.com/brackenfield/tc162core/decoder"
)

// splitBlocks ensures no edge targets an address strictly inside a block.
// A worklist traversal can leave a block's byte range straddling an
// address that only later became an edge target (see the worked
// straight-line-then-loop scenario in SPEC_FULL.md §8); this pass cuts
// such blocks at every interior target until none remain.
func splitBlocks(blocks map[uint32]*Block) {
	for {
		targets := collectTargets(blocks)
		splitAddr, owner, ok := firstInteriorTarget(blocks, targets)
		if !ok {
			return
		}

		lower, upper := splitAt(owner, splitAddr)
		blocks[lower.Start] = lower
		blocks[upper.Start] = upper
	}
}

func collectTargets(blocks map[uint32]*Block) map[uint32]bool {
	targets := map[uint32]bool{}
	for _, b := range blocks {
		for _, e := range b.Edges {
			targets[e.To] = true
		}
	}
	return targets
}

// firstInteriorTarget returns the smallest (block-start, target) pair
// where the target falls strictly inside the block's range, scanning
// block starts in ascending order for determinism.
func firstInteriorTarget(blocks map[uint32]*Block, targets map[uint32]bool) (uint32, *Block, bool) {
	starts := make([]uint32, 0, len(blocks))
	for s := range blocks {
		starts = append(starts, s)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	for _, s := range starts {
		b := blocks[s]
		best := uint32(0)
		found := false
		for t := range targets {
			if t > b.Start && t < b.End {
				if !found || t < best {
					best = t
					found = true
				}
			}
		}
		if found {
			return best, b, true
		}
	}
	return 0, nil, false
}

// splitAt cuts b into [b.Start, at) and [at, b.End), partitioning its
// instructions by address. The lower half gets a fresh ft edge to at;
// the upper half inherits b's original edges, since the terminating
// instruction that produced them always lies past the cut.
func splitAt(b *Block, at uint32) (lower, upper *Block) {
	cut := len(b.Insns)
	for i, insn := range b.Insns {
		if insn.Address >= at {
			cut = i
			break
		}
	}

	lowerInsns := append([]decoder.Instruction{}, b.Insns[:cut]...)
	upperInsns := append([]decoder.Instruction{}, b.Insns[cut:]...)

	lower = &Block{
		Start: b.Start,
		End:   at,
		Insns: lowerInsns,
		Edges: []Edge{{Kind: EdgeFT, To: at}},
	}
	upper = &Block{
		Start: at,
		End:   b.End,
		Insns: upperInsns,
		Edges: b.Edges,
	}
	return lower, upper
}
