package report

import (
	"fmt"
	"sort"

	"github.com/brackenfield/tc162core/analyzer"
	"github.com/brackenfield/tc162core/format"
	"github.com/brackenfield/tc162core/image"
)

// Assemble takes an image and an analyzer Result and produces the
// finalized, deterministically-ordered Report: it sorts blocks by
// address, assigns default labels and overlays externalLabels with
// collision resolution, renders every instruction once via
// format.Format, and emits stable edge, function, xref, and diagnostic
// orderings.
func Assemble(img *image.Image, res *analyzer.Result, externalLabels []LabelEntry) *Report {
	entrySet := make(map[uint32]bool, len(res.Functions))
	for _, fn := range res.Functions {
		entrySet[fn.Entry] = true
	}

	defaults := map[uint32]string{}
	for start := range res.Blocks {
		defaults[start] = defaultLabel(start, entrySet[start])
	}
	labels := buildLabels(defaults, externalLabels)

	r := &Report{
		Segments:  segmentInfos(img),
		Blocks:    blockInfos(res.Blocks, labels),
		Functions: functionInfos(res.Functions),
		Xrefs:     xrefInfos(analyzer.Xrefs(res.Blocks)),
		Cancelled: res.Cancelled,
		labels:    labels,
	}
	r.Labels = sortedLabelEntries(labels)
	r.Diagnostics = diagnosticInfos(res.Diagnostics)
	return r
}

func segmentInfos(img *image.Image) []SegmentInfo {
	segs := img.Segments()
	out := make([]SegmentInfo, 0, len(segs))
	for _, s := range segs {
		out = append(out, SegmentInfo{
			Name: s.Name, Base: s.Base, End: s.End(),
			Perms: s.Perms.String(), Kind: s.Kind.String(),
		})
	}
	return out
}

func blockInfos(blocks map[uint32]*analyzer.Block, labels map[uint32]string) []BlockInfo {
	starts := make([]uint32, 0, len(blocks))
	for s := range blocks {
		starts = append(starts, s)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	out := make([]BlockInfo, 0, len(starts))
	for _, s := range starts {
		b := blocks[s]
		bi := BlockInfo{Start: b.Start, End: b.End, Label: labels[b.Start]}
		for _, insn := range b.Insns {
			bi.Insns = append(bi.Insns, InsnInfo{
				Addr:     insn.Address,
				BytesHex: fmt.Sprintf("%0*x", insn.Width*2, insn.Raw),
				Text:     format.Format(insn),
			})
		}
		bi.Edges = stableEdges(b.Edges)
		out = append(out, bi)
	}
	return out
}

// stableEdges orders a block's edges by (kind, to) so Report assembly
// is insertion-order-independent.
func stableEdges(edges []analyzer.Edge) []EdgeRef {
	out := make([]EdgeRef, 0, len(edges))
	for _, e := range edges {
		out = append(out, EdgeRef{Kind: e.Kind.String(), To: e.To})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].To < out[j].To
	})
	return out
}

func functionInfos(fns []*analyzer.Function) []FunctionInfo {
	out := make([]FunctionInfo, 0, len(fns))
	for _, f := range fns {
		out = append(out, FunctionInfo{Entry: f.Entry, Blocks: append([]uint32{}, f.Blocks...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Entry < out[j].Entry })
	return out
}

func xrefInfos(xs []analyzer.Xref) []XrefInfo {
	out := make([]XrefInfo, 0, len(xs))
	for _, x := range xs {
		out = append(out, XrefInfo{From: x.From, To: x.To, Kind: x.Kind})
	}
	return out
}

func diagnosticInfos(ds []analyzer.Diagnostic) []DiagnosticInfo {
	out := make([]DiagnosticInfo, 0, len(ds))
	for _, d := range ds {
		out = append(out, DiagnosticInfo{Kind: diagKind(d.Kind), Addr: d.Address, Message: d.Message})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out
}
