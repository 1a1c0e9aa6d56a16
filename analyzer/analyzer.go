package analyzer

import (
	"context"
	"sort"

	"github.com/brackenfield/tc162core/decoder"
	"github.com/brackenfield/tc162core/image"
)

// Analyzer holds the immutable inputs to a traversal: the image to walk
// and the limits that bound a single block's growth.
type Analyzer struct {
	view   *image.MemoryView
	limits Limits
}

// New builds an Analyzer over img. Zero-valued limit fields mean
// unlimited.
func New(img *image.Image, limits Limits) *Analyzer {
	return &Analyzer{view: image.NewMemoryView(img), limits: limits}
}

// Run walks the worklist from seeds to completion (or cancellation),
// producing a Result whose blocks are pairwise address-disjoint and in
// which no edge targets an address strictly inside a block. An edge whose
// target is not in an executable segment is kept, and no block starts at
// that target.
func (a *Analyzer) Run(ctx context.Context, seeds []uint32) *Result {
	res := &Result{
		Blocks:  map[uint32]*Block{},
		Entries: dedupSorted(seeds),
	}

	work := newAddrQueue(seeds)
	cancelled := false

outer:
	for !work.empty() {
		addr := work.pop()
		if _, exists := res.Blocks[addr]; exists {
			continue
		}

		seg, ok := a.view.SegmentContaining(addr)
		if !ok || !seg.Perms.Has(image.PermExecute) {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Kind: DiagNonExecutable, Address: addr,
				Message: "seed or branch target is not in an executable segment",
			})
			continue
		}

		block := &Block{Start: addr, End: addr}
		pc := addr
		count, nbytes := 0, 0

		for {
			if ctx != nil && ctx.Err() != nil {
				cancelled = true
				break outer
			}

			if existing, isBlockStart := res.Blocks[pc]; isBlockStart && pc != addr {
				block.Edges = append(block.Edges, Edge{Kind: EdgeFT, To: existing.Start})
				break
			}

			d, derr := decoder.Decode(a.view, pc)
			if derr != nil {
				width := uint32(4)
				var raw uint32
				if de, ok := derr.(*decoder.Error); ok {
					raw = de.Raw32
					if de.Width != 0 {
						width = uint32(de.Width)
					}
				}
				block.Insns = append(block.Insns, decoder.Instruction{
					Address: pc, Width: uint8(width), Op: decoder.Unknown, Raw: raw,
				})
				block.End = pc + width
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Kind: DiagOOB, Address: pc, Message: derr.Error(),
				})
				break
			}

			block.Insns = append(block.Insns, d)
			pc += uint32(d.Width)
			count++
			nbytes += int(d.Width)
			block.End = pc

			if d.IsBranch() {
				target := d.Target()
				if d.IsConditional() {
					block.Edges = append(block.Edges, Edge{Kind: EdgeCBR, To: target})
					block.Edges = append(block.Edges, Edge{Kind: EdgeFT, To: pc})
					work.push(target)
					work.push(pc)
				} else {
					block.Edges = append(block.Edges, Edge{Kind: EdgeBR, To: target})
					work.push(target)
				}
				break
			}

			if (a.limits.MaxInstructions > 0 && count >= a.limits.MaxInstructions) ||
				(a.limits.MaxBytes > 0 && nbytes >= a.limits.MaxBytes) {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Kind: DiagLimit, Address: pc,
					Message: "traversal limit reached before a terminator was decoded",
				})
				break
			}
		}

		res.Blocks[addr] = block
	}

	res.Cancelled = cancelled
	splitBlocks(res.Blocks)
	res.Functions = assignFunctions(res.Blocks, res.Entries)
	sortDiagnostics(res.Diagnostics)
	return res
}

func dedupSorted(addrs []uint32) []uint32 {
	seen := map[uint32]bool{}
	var out []uint32
	for _, a := range addrs {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortDiagnostics(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Address < ds[j].Address })
}

// addrQueue is an ordered set that always yields the smallest pending
// address first, giving the worklist a deterministic, input-order-independent
// traversal sequence.
type addrQueue struct {
	pending map[uint32]bool
}

func newAddrQueue(seeds []uint32) *addrQueue {
	q := &addrQueue{pending: map[uint32]bool{}}
	for _, s := range seeds {
		q.push(s)
	}
	return q
}

func (q *addrQueue) push(addr uint32) { q.pending[addr] = true }
func (q *addrQueue) empty() bool      { return len(q.pending) == 0 }

func (q *addrQueue) pop() uint32 {
	min := uint32(0)
	first := true
	for a := range q.pending {
		if first || a < min {
			min = a
			first = false
		}
	}
	delete(q.pending, min)
	return min
}
