package analyzer

import "sort"

// assignFunctions floods from each entry over ft/br/cbr edges, in
// ascending entry order so a block reachable from two entries always
// settles on the smaller one. Any block neither reached by an entry nor
// itself an entry becomes a singleton function of its own.
func assignFunctions(blocks map[uint32]*Block, entries []uint32) []*Function {
	owner := map[uint32]uint32{} // block start -> entry address
	var fns []*Function

	sortedEntries := append([]uint32{}, entries...)
	sort.Slice(sortedEntries, func(i, j int) bool { return sortedEntries[i] < sortedEntries[j] })

	for _, e := range sortedEntries {
		if _, exists := blocks[e]; !exists {
			continue // seed never resolved to a block (e.g. non-executable)
		}
		if _, taken := owner[e]; taken {
			continue
		}
		members := floodFrom(blocks, owner, e)
		if len(members) == 0 {
			continue
		}
		fns = append(fns, &Function{Entry: e, Blocks: members})
	}

	// Every remaining unowned block becomes its own singleton function.
	var leftovers []uint32
	for start := range blocks {
		if _, taken := owner[start]; !taken {
			leftovers = append(leftovers, start)
		}
	}
	sort.Slice(leftovers, func(i, j int) bool { return leftovers[i] < leftovers[j] })
	for _, start := range leftovers {
		owner[start] = start
		fns = append(fns, &Function{Entry: start, Blocks: []uint32{start}})
	}

	sort.Slice(fns, func(i, j int) bool { return fns[i].Entry < fns[j].Entry })
	for _, f := range fns {
		sort.Slice(f.Blocks, func(i, j int) bool { return f.Blocks[i] < f.Blocks[j] })
	}
	return fns
}

// floodFrom performs a BFS from entry over block edges, claiming each
// unowned block for entry and returning the member addresses.
func floodFrom(blocks map[uint32]*Block, owner map[uint32]uint32, entry uint32) []uint32 {
	var members []uint32
	queue := []uint32{entry}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, taken := owner[cur]; taken {
			continue
		}
		b, exists := blocks[cur]
		if !exists {
			continue
		}
		owner[cur] = entry
		members = append(members, cur)
		for _, e := range b.Edges {
			if e.Kind == EdgeCall {
				continue // call targets are callee entries, not this function's blocks
			}
			if _, taken := owner[e.To]; !taken {
				queue = append(queue, e.To)
			}
		}
	}
	return members
}

// Xref is a flow cross-reference: the address of a block's terminating
// instruction, and the block-start address it refers to.
type Xref struct {
	From uint32
	To   uint32
	Kind string
}

// Xrefs derives one "flow" xref per edge from the final Result.
func Xrefs(blocks map[uint32]*Block) []Xref {
	var out []Xref
	var starts []uint32
	for s := range blocks {
		starts = append(starts, s)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	for _, s := range starts {
		b := blocks[s]
		if len(b.Insns) == 0 {
			continue
		}
		from := b.Insns[len(b.Insns)-1].Address
		for _, e := range b.Edges {
			out = append(out, Xref{From: from, To: e.To, Kind: "flow"})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
