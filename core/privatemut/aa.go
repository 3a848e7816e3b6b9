// core/privatemut/aa.go
package privatemut

import (
	"fmt"

	"nextclade-core/genemap"
	"nextclade-core/mut"
	"nextclade-core/query"
)

// ErrRefPeptideNotFound reports a gene the gene map declares but whose
// reference peptide is missing. The gene is skipped; the rest of the
// query is still processed.
type ErrRefPeptideNotFound struct {
	Gene string
}

func (e *ErrRefPeptideNotFound) Error() string {
	return fmt.Sprintf("when finding private aminoacid mutations: reference peptide not found for gene %q", e.Gene)
}

// FindPrivateAaMutations runs the private-mutation diff once per gene
// of the gene map, against that gene's reference peptide and the node's
// per-gene mutation map (absent gene entries mean no node mutations).
// Genes without a reference peptide are absent from the result; each
// contributes one non-fatal error instead.
func FindPrivateAaMutations(
	nodeMutMap map[string]map[int]byte,
	seq *query.Result,
	refPeptides map[string][]byte,
	gm *genemap.GeneMap,
	subLabels map[string]mut.SubLabelIndex,
	delLabels map[string]mut.DelLabelIndex,
) (map[string]Mutations, []error) {
	out := make(map[string]Mutations, gm.Len())
	var errs []error

	for _, gene := range gm.Genes() {
		peptide, ok := refPeptides[gene.Name]
		if !ok {
			errs = append(errs, &ErrRefPeptideNotFound{Gene: gene.Name})
			continue
		}

		gr := seq.Genes[gene.Name]
		qry := make(map[int]byte, len(gr.Substitutions)+len(gr.Deletions))
		for _, s := range gr.Substitutions {
			if mut.IsAmbiguousAa(s.Qry) {
				continue
			}
			qry[s.Pos] = s.Qry
		}
		for _, d := range gr.Deletions {
			qry[d.Pos] = mut.Gap
		}

		out[gene.Name] = findPrivate(seqView{
			node:      nodeMutMap[gene.Name],
			qry:       qry,
			ref:       peptide,
			sequenced: gr.Sequenced,
		}, subLabels[gene.Name], delLabels[gene.Name])
	}
	return out, errs
}
