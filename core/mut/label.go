// core/mut/label.go
package mut

/* ----------------------- types --------------------- */

// SubLabel pairs a known substitution pattern with its catalog labels
// (e.g. lineage-defining marker names).
type SubLabel struct {
	Sub    Sub
	Labels []string
}

// DelLabel pairs a known deletion pattern with its catalog labels.
type DelLabel struct {
	Del    Del
	Labels []string
}

// LabeledSub is a private substitution that matched the catalog.
type LabeledSub struct {
	Sub    Sub
	Labels []string
}

// LabeledDel is a private deletion that matched the catalog.
type LabeledDel struct {
	Del    Del
	Labels []string
}

/* ---------------------- indexes -------------------- */

// SubLabelIndex is an exact-match lookup over a substitution catalog.
// Built once per run; catalogs are immutable.
type SubLabelIndex map[Sub][]string

// DelLabelIndex is an exact-match lookup over a deletion catalog.
type DelLabelIndex map[Del][]string

// BuildSubLabelIndex indexes catalog entries by (pos, from, to).
// Later entries for the same pattern append their labels.
func BuildSubLabelIndex(entries []SubLabel) SubLabelIndex {
	idx := make(SubLabelIndex, len(entries))
	for _, e := range entries {
		idx[e.Sub] = append(idx[e.Sub], e.Labels...)
	}
	return idx
}

// BuildDelLabelIndex indexes catalog entries by (pos, deleted symbol).
func BuildDelLabelIndex(entries []DelLabel) DelLabelIndex {
	idx := make(DelLabelIndex, len(entries))
	for _, e := range entries {
		idx[e.Del] = append(idx[e.Del], e.Labels...)
	}
	return idx
}
