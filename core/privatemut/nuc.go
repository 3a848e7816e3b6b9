// core/privatemut/nuc.go
package privatemut

import (
	"nextclade-core/mut"
	"nextclade-core/query"
)

// FindPrivateNucMutations computes the nucleotide changes private to
// the query relative to its nearest tree node. nodeMutMap maps genome
// position to the node's state where it differs from refSeq; seq is the
// query's analysis result; both are read-only.
func FindPrivateNucMutations(
	nodeMutMap map[int]byte,
	seq *query.Result,
	refSeq []byte,
	subLabels mut.SubLabelIndex,
	delLabels mut.DelLabelIndex,
) Mutations {
	qry := make(map[int]byte, len(seq.Substitutions))
	for _, s := range seq.Substitutions {
		if !mut.IsCanonicalNuc(s.Qry) {
			continue // ambiguous calls carry no information
		}
		qry[s.Pos] = s.Qry
	}
	for _, d := range seq.Deletions {
		for pos := d.Begin; pos < d.End; pos++ {
			qry[pos] = mut.Gap
		}
	}
	return findPrivate(seqView{
		node:      nodeMutMap,
		qry:       qry,
		ref:       refSeq,
		sequenced: seq.Sequenced,
	}, subLabels, delLabels)
}
