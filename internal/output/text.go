// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/bgruening/nextclade/pkg/api"
)

// Header is the TSV column line.
const Header = "seq_name\tnearest_node\tlevel\tgene\tkind\tmutation\tlabels"

// WriteHeader writes the TSV header line.
func WriteHeader(w io.Writer) error {
	_, err := fmt.Fprintln(w, Header)
	return err
}

// WriteTextReport prints one TSV row per private mutation of the report,
// nucleotide level first, then genes in stable order.
func WriteTextReport(w io.Writer, rep api.ReportV1) error {
	if err := writeLevel(w, rep, "nuc", "", rep.NucMutations); err != nil {
		return err
	}
	for _, gene := range SortedGenes(rep.AaMutations) {
		if err := writeLevel(w, rep, "aa", gene, rep.AaMutations[gene]); err != nil {
			return err
		}
	}
	return nil
}

// WriteText renders every report, TSV rows only (no header).
func WriteText(w io.Writer, reports []api.ReportV1) error {
	for _, rep := range reports {
		if err := WriteTextReport(w, rep); err != nil {
			return err
		}
	}
	return nil
}

func writeLevel(w io.Writer, rep api.ReportV1, level, gene string, m api.PrivateMutationsV1) error {
	labels := map[string]string{}
	for _, l := range m.LabeledSubstitutions {
		labels[l.Mutation] = strings.Join(l.Labels, ",")
	}
	for _, l := range m.LabeledDeletions {
		labels[l.Mutation] = strings.Join(l.Labels, ",")
	}

	row := func(kind, mutation string) error {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rep.SeqName, rep.NearestNodeID, level, gene, kind, mutation, labels[mutation])
		return err
	}
	for _, s := range m.Substitutions {
		if err := row("substitution", s); err != nil {
			return err
		}
	}
	for _, d := range m.Deletions {
		if err := row("deletion", d); err != nil {
			return err
		}
	}
	for _, r := range m.Reversions {
		if err := row("reversion", r); err != nil {
			return err
		}
	}
	return nil
}
