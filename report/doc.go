package report

// Doc is the allocation-light JSON projection of a Report: plain
// structs with json tags, no behavior, trivially marshaled.
type Doc struct {
	Segments    []SegmentDoc    `json:"segments"`
	Blocks      []BlockDoc      `json:"blocks"`
	Functions   []FunctionDoc   `json:"functions"`
	Xrefs       []XrefDoc       `json:"xrefs"`
	Labels      []LabelDoc      `json:"labels"`
	Diagnostics []DiagnosticDoc `json:"diagnostics"`
	Cancelled   bool            `json:"cancelled"`
}

type SegmentDoc struct {
	Name  string `json:"name"`
	Base  uint32 `json:"base"`
	End   uint32 `json:"end"`
	Perms string `json:"perms"`
	Kind  string `json:"kind"`
}

type InsnDoc struct {
	Addr     uint32 `json:"addr"`
	BytesHex string `json:"bytes_hex"`
	Text     string `json:"text"`
}

type EdgeDoc struct {
	Kind string `json:"kind"`
	To   uint32 `json:"to"`
}

type BlockDoc struct {
	Start uint32    `json:"start"`
	End   uint32    `json:"end"`
	Label string    `json:"label"`
	Insns []InsnDoc `json:"insns"`
	Edges []EdgeDoc `json:"edges"`
}

type FunctionDoc struct {
	Entry  uint32   `json:"entry"`
	Blocks []uint32 `json:"blocks"`
}

type XrefDoc struct {
	From uint32 `json:"from"`
	To   uint32 `json:"to"`
	Kind string `json:"kind"`
}

type LabelDoc struct {
	Addr uint32 `json:"addr"`
	Name string `json:"name"`
}

type DiagnosticDoc struct {
	Kind    string `json:"kind"`
	Addr    uint32 `json:"addr"`
	Message string `json:"message"`
}

// ToJSONDoc projects r into its JSON-ready shape. No field reorders or
// recomputes anything: r's slices are already in final order.
func ToJSONDoc(r *Report) Doc {
	doc := Doc{Cancelled: r.Cancelled}

	for _, s := range r.Segments {
		doc.Segments = append(doc.Segments, SegmentDoc{
			Name: s.Name, Base: s.Base, End: s.End, Perms: s.Perms, Kind: s.Kind,
		})
	}
	for _, b := range r.Blocks {
		bd := BlockDoc{Start: b.Start, End: b.End, Label: b.Label}
		for _, i := range b.Insns {
			bd.Insns = append(bd.Insns, InsnDoc{Addr: i.Addr, BytesHex: i.BytesHex, Text: i.Text})
		}
		for _, e := range b.Edges {
			bd.Edges = append(bd.Edges, EdgeDoc{Kind: e.Kind, To: e.To})
		}
		doc.Blocks = append(doc.Blocks, bd)
	}
	for _, f := range r.Functions {
		doc.Functions = append(doc.Functions, FunctionDoc{Entry: f.Entry, Blocks: f.Blocks})
	}
	for _, x := range r.Xrefs {
		doc.Xrefs = append(doc.Xrefs, XrefDoc{From: x.From, To: x.To, Kind: x.Kind})
	}
	for _, l := range r.Labels {
		doc.Labels = append(doc.Labels, LabelDoc{Addr: l.Addr, Name: l.Name})
	}
	for _, d := range r.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, DiagnosticDoc{Kind: d.Kind, Addr: d.Addr, Message: d.Message})
	}
	return doc
}
