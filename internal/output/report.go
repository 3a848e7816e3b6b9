// internal/output/report.go
package output

import (
	"fmt"
	"sort"

	"github.com/bgruening/nextclade/internal/dataset"
	"github.com/bgruening/nextclade/internal/input"
	"github.com/bgruening/nextclade/pkg/api"
	"nextclade-core/privatemut"
)

// BuildReport runs both finders for one query and renders the stable
// wire form. A malformed record (positions outside the reference) is an
// error; an unknown nearest node is only a warning.
func BuildReport(ds *dataset.Dataset, rec input.Record) (api.ReportV1, error) {
	rep := api.ReportV1{
		SeqName:       rec.Query.SeqName,
		NearestNodeID: rec.NodeID,
	}

	if err := checkBounds(ds, rec); err != nil {
		return rep, err
	}

	node, ok := ds.Nodes[rec.NodeID]
	if !ok {
		rep.Warnings = append(rep.Warnings,
			fmt.Sprintf("nearest node %q not found in tree; query skipped", rec.NodeID))
		return rep, nil
	}

	nuc := privatemut.FindPrivateNucMutations(node.NucMuts, &rec.Query, ds.Ref,
		ds.NucSubLabels, ds.NucDelLabels)
	rep.NucMutations = toAPIMutations(&nuc)

	aa, errs := privatemut.FindPrivateAaMutations(node.AaMuts, &rec.Query, ds.Peptides,
		ds.GeneMap, ds.AaSubLabels, ds.AaDelLabels)
	if len(aa) > 0 {
		rep.AaMutations = make(map[string]api.PrivateMutationsV1, len(aa))
		for gene, m := range aa {
			m := m
			rep.AaMutations[gene] = toAPIMutations(&m)
		}
	}
	for _, err := range errs {
		rep.Warnings = append(rep.Warnings, err.Error())
	}
	return rep, nil
}

// checkBounds enforces the finders' position contract up front, so bad
// input surfaces as an error instead of a panic deep in the core.
func checkBounds(ds *dataset.Dataset, rec input.Record) error {
	refLen := len(ds.Ref)
	q := &rec.Query
	if q.Alignment.Begin < 0 || q.Alignment.End > refLen {
		return fmt.Errorf("%s: alignment %d..%d outside reference (len %d)",
			q.SeqName, q.Alignment.Begin, q.Alignment.End, refLen)
	}
	for _, s := range q.Substitutions {
		if s.Pos < 0 || s.Pos >= refLen {
			return fmt.Errorf("%s: substitution %s outside reference (len %d)", q.SeqName, s, refLen)
		}
	}
	for _, d := range q.Deletions {
		if d.Begin < 0 || d.End > refLen {
			return fmt.Errorf("%s: deletion %d..%d outside reference (len %d)", q.SeqName, d.Begin, d.End, refLen)
		}
	}
	for gene, gr := range q.Genes {
		peptide, ok := ds.Peptides[gene]
		if !ok {
			continue // handled by the finder as the per-gene non-fatal error
		}
		for _, s := range gr.Substitutions {
			if s.Pos < 0 || s.Pos >= len(peptide) {
				return fmt.Errorf("%s: %s:%s outside peptide (len %d)", q.SeqName, gene, s, len(peptide))
			}
		}
		for _, d := range gr.Deletions {
			if d.Pos < 0 || d.Pos >= len(peptide) {
				return fmt.Errorf("%s: %s:%s outside peptide (len %d)", q.SeqName, gene, d, len(peptide))
			}
		}
	}
	return nil
}

func toAPIMutations(m *privatemut.Mutations) api.PrivateMutationsV1 {
	v := api.PrivateMutationsV1{
		TotalSubstitutions: len(m.Substitutions),
		TotalDeletions:     len(m.Deletions),
		TotalReversions:    len(m.Reversions),
	}
	for _, s := range m.Substitutions {
		v.Substitutions = append(v.Substitutions, s.String())
	}
	for _, d := range m.Deletions {
		v.Deletions = append(v.Deletions, d.String())
	}
	for _, s := range m.Reversions {
		v.Reversions = append(v.Reversions, s.String())
	}
	for _, s := range m.LabeledSubstitutions {
		v.LabeledSubstitutions = append(v.LabeledSubstitutions, api.LabeledMutationV1{
			Mutation: s.Sub.String(),
			Labels:   append([]string(nil), s.Labels...),
		})
	}
	for _, s := range m.UnlabeledSubstitutions {
		v.UnlabeledSubstitutions = append(v.UnlabeledSubstitutions, s.String())
	}
	for _, d := range m.LabeledDeletions {
		v.LabeledDeletions = append(v.LabeledDeletions, api.LabeledMutationV1{
			Mutation: d.Del.String(),
			Labels:   append([]string(nil), d.Labels...),
		})
	}
	for _, d := range m.UnlabeledDeletions {
		v.UnlabeledDeletions = append(v.UnlabeledDeletions, d.String())
	}
	return v
}

// SortedGenes returns the gene keys of a report's aa section in a
// stable order for rendering.
func SortedGenes(m map[string]api.PrivateMutationsV1) []string {
	genes := make([]string, 0, len(m))
	for g := range m {
		genes = append(genes, g)
	}
	sort.Strings(genes)
	return genes
}
