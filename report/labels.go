package report

import (
	"fmt"
	"sort"
)

// ValidLabelName reports whether name is a legal label: non-empty,
// starting with a letter or underscore, and containing only letters,
// digits, and underscores thereafter.
func ValidLabelName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			// always legal
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func defaultLabel(addr uint32, isFunctionEntry bool) string {
	if isFunctionEntry {
		return fmt.Sprintf("sub_%08x", addr)
	}
	return fmt.Sprintf("loc_%08x", addr)
}

// buildLabels produces the address->name map: defaults first, then the
// external overlay applied in (address, name) order so collisions
// resolve the same way regardless of input order, per SPEC_FULL.md §9.
func buildLabels(defaults map[uint32]string, external []LabelEntry) map[uint32]string {
	labels := make(map[uint32]string, len(defaults))
	for addr, name := range defaults {
		labels[addr] = name
	}

	sorted := append([]LabelEntry{}, external...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Addr != sorted[j].Addr {
			return sorted[i].Addr < sorted[j].Addr
		}
		return sorted[i].Name < sorted[j].Name
	})

	used := make(map[string]bool, len(labels))
	for _, n := range labels {
		used[n] = true
	}

	for _, e := range sorted {
		name := e.Name
		if !ValidLabelName(name) {
			continue
		}
		if existing, ok := labels[e.Addr]; ok && existing == name {
			continue
		}
		name = uniqueName(name, used, e.Addr, labels)
		labels[e.Addr] = name
		used[name] = true
	}
	return labels
}

// uniqueName returns name unchanged if it is not already in use by a
// different address, otherwise the smallest "<name>_<n>" suffix (n >= 1)
// not yet in use.
func uniqueName(name string, used map[string]bool, addr uint32, labels map[uint32]string) string {
	if owner, ok := reverseLookup(labels, name); !ok || owner == addr {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", name, n)
		if !used[candidate] {
			return candidate
		}
	}
}

func reverseLookup(labels map[uint32]string, name string) (uint32, bool) {
	for addr, n := range labels {
		if n == name {
			return addr, true
		}
	}
	return 0, false
}

func sortedLabelEntries(labels map[uint32]string) []LabelEntry {
	out := make([]LabelEntry, 0, len(labels))
	for addr, name := range labels {
		out = append(out, LabelEntry{Addr: addr, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out
}
