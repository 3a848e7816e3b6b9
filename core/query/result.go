// core/query/result.go
package query

import "nextclade-core/mut"

// Result is the analysis of one query sequence relative to the
// reference: its nucleotide changes plus per-gene amino-acid changes.
// It is produced by the upstream alignment/translation pipeline and is
// read-only here.
type Result struct {
	SeqName string

	// Nucleotide level, all relative to the global reference.
	Substitutions []mut.Sub   // unambiguous substitutions
	Deletions     []mut.Range // deleted reference ranges
	Missing       []mut.Range // unsequenced/ambiguous ranges
	Alignment     mut.Range   // aligned part of the reference

	// Amino-acid level, keyed by gene name.
	Genes map[string]GeneResult
}

// GeneResult holds one gene's amino-acid changes relative to the
// gene's reference peptide.
type GeneResult struct {
	Substitutions []mut.Sub
	Deletions     []mut.Del   // deleted peptide positions
	Unknowns      []mut.Range // unsequenced peptide ranges
}

// Sequenced reports whether the query carries information at the given
// nucleotide position: inside the alignment and not in a missing range.
func (r *Result) Sequenced(pos int) bool {
	if !r.Alignment.Contains(pos) {
		return false
	}
	for _, m := range r.Missing {
		if m.Contains(pos) {
			return false
		}
	}
	return true
}

// Sequenced reports whether the query carries information at the given
// peptide position of this gene.
func (g *GeneResult) Sequenced(pos int) bool {
	for _, u := range g.Unknowns {
		if u.Contains(pos) {
			return false
		}
	}
	return true
}
