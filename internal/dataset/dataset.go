// internal/dataset/dataset.go
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/bgruening/nextclade/internal/fasta"
	"nextclade-core/genemap"
	"nextclade-core/mut"
)

// Dataset is everything a run shares across queries: reference data,
// gene map, tree node mutation maps, and prebuilt label indexes.
// Immutable after Load.
type Dataset struct {
	Ref      []byte
	Peptides map[string][]byte
	GeneMap  *genemap.GeneMap
	Nodes    map[string]Node

	NucSubLabels mut.SubLabelIndex
	NucDelLabels mut.DelLabelIndex
	AaSubLabels  map[string]mut.SubLabelIndex
	AaDelLabels  map[string]mut.DelLabelIndex
}

// Node is one reference-tree node's mutations relative to the reference.
type Node struct {
	NucMuts map[int]byte
	AaMuts  map[string]map[int]byte
}

// Load reads dataset.yaml in dir and the files it names.
// All paths in dataset.yaml are relative to dir.
func Load(dir string) (*Dataset, error) {
	v := viper.New()
	v.SetConfigName("dataset")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	path := func(key string) (string, error) {
		p := v.GetString(key)
		if p == "" {
			return "", fmt.Errorf("dataset: %s not set in dataset.yaml", key)
		}
		return filepath.Join(dir, p), nil
	}

	var ds Dataset
	for _, step := range []struct {
		key  string
		load func(string) error
	}{
		{"reference", ds.loadReference},
		{"peptides", ds.loadPeptides},
		{"genemap", ds.loadGeneMap},
		{"tree", ds.loadTree},
		{"labels", ds.loadLabels},
	} {
		p, err := path(step.key)
		if err != nil {
			return nil, err
		}
		if err := step.load(p); err != nil {
			return nil, err
		}
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (ds *Dataset) loadReference(path string) error {
	recs, err := fasta.ReadFile(path)
	if err != nil {
		return err
	}
	if len(recs) != 1 {
		return fmt.Errorf("%s: expected a single reference record, got %d", path, len(recs))
	}
	ds.Ref = recs[0].Seq
	return nil
}

func (ds *Dataset) loadPeptides(path string) error {
	recs, err := fasta.ReadFile(path)
	if err != nil {
		return err
	}
	ds.Peptides = make(map[string][]byte, len(recs))
	for _, r := range recs {
		if _, dup := ds.Peptides[r.ID]; dup {
			return fmt.Errorf("%s: duplicate peptide %q", path, r.ID)
		}
		ds.Peptides[r.ID] = r.Seq
	}
	return nil
}

func (ds *Dataset) loadGeneMap(path string) error {
	var doc struct {
		Genes []struct {
			Name   string `json:"name"`
			Start  int    `json:"start"`
			End    int    `json:"end"`
			Strand string `json:"strand"`
			Frame  int    `json:"frame"`
		} `json:"genes"`
	}
	if err := readJSON(path, &doc); err != nil {
		return err
	}
	genes := make([]genemap.Gene, len(doc.Genes))
	for i, g := range doc.Genes {
		genes[i] = genemap.Gene{Name: g.Name, Start: g.Start, End: g.End, Strand: g.Strand, Frame: g.Frame}
	}
	gm, err := genemap.New(genes)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	ds.GeneMap = gm
	return nil
}

func (ds *Dataset) loadTree(path string) error {
	var doc struct {
		Nodes map[string]struct {
			NucMutations []string            `json:"nuc_mutations"`
			AaMutations  map[string][]string `json:"aa_mutations"`
		} `json:"nodes"`
	}
	if err := readJSON(path, &doc); err != nil {
		return err
	}
	ds.Nodes = make(map[string]Node, len(doc.Nodes))
	for id, n := range doc.Nodes {
		node := Node{NucMuts: make(map[int]byte, len(n.NucMutations))}
		for _, s := range n.NucMutations {
			sub, err := mut.ParseSub(s)
			if err != nil {
				return fmt.Errorf("%s: node %q: %w", path, id, err)
			}
			node.NucMuts[sub.Pos] = sub.Qry
		}
		if len(n.AaMutations) > 0 {
			node.AaMuts = make(map[string]map[int]byte, len(n.AaMutations))
			for gene, muts := range n.AaMutations {
				m := make(map[int]byte, len(muts))
				for _, s := range muts {
					sub, err := mut.ParseSub(s)
					if err != nil {
						return fmt.Errorf("%s: node %q gene %q: %w", path, id, gene, err)
					}
					m[sub.Pos] = sub.Qry
				}
				node.AaMuts[gene] = m
			}
		}
		ds.Nodes[id] = node
	}
	return nil
}

func (ds *Dataset) loadLabels(path string) error {
	var doc struct {
		NucSubstitutions map[string][]string `json:"nuc_substitutions"`
		NucDeletions     map[string][]string `json:"nuc_deletions"`
		AaSubstitutions  map[string][]string `json:"aa_substitutions"`
		AaDeletions      map[string][]string `json:"aa_deletions"`
	}
	if err := readJSON(path, &doc); err != nil {
		return err
	}

	var subEntries []mut.SubLabel
	for s, labels := range doc.NucSubstitutions {
		sub, err := mut.ParseSub(s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		subEntries = append(subEntries, mut.SubLabel{Sub: sub, Labels: labels})
	}
	ds.NucSubLabels = mut.BuildSubLabelIndex(subEntries)

	var delEntries []mut.DelLabel
	for s, labels := range doc.NucDeletions {
		del, err := mut.ParseDel(s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		delEntries = append(delEntries, mut.DelLabel{Del: del, Labels: labels})
	}
	ds.NucDelLabels = mut.BuildDelLabelIndex(delEntries)

	aaSubs := map[string][]mut.SubLabel{}
	for s, labels := range doc.AaSubstitutions {
		gene, sub, err := splitAaMutation(s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		aaSubs[gene] = append(aaSubs[gene], mut.SubLabel{Sub: sub, Labels: labels})
	}
	ds.AaSubLabels = make(map[string]mut.SubLabelIndex, len(aaSubs))
	for gene, entries := range aaSubs {
		ds.AaSubLabels[gene] = mut.BuildSubLabelIndex(entries)
	}

	aaDels := map[string][]mut.DelLabel{}
	for s, labels := range doc.AaDeletions {
		gene, sub, err := splitAaMutation(s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if sub.Qry != mut.Gap {
			return fmt.Errorf("%s: aa deletion %q does not end in %q", path, s, string(mut.Gap))
		}
		aaDels[gene] = append(aaDels[gene], mut.DelLabel{Del: mut.Del{Pos: sub.Pos, Ref: sub.Ref}, Labels: labels})
	}
	ds.AaDelLabels = make(map[string]mut.DelLabelIndex, len(aaDels))
	for gene, entries := range aaDels {
		ds.AaDelLabels[gene] = mut.BuildDelLabelIndex(entries)
	}
	return nil
}

// validate cross-checks the loaded pieces so the core finders can trust
// their position contract.
func (ds *Dataset) validate() error {
	for id, node := range ds.Nodes {
		for pos := range node.NucMuts {
			if pos < 0 || pos >= len(ds.Ref) {
				return fmt.Errorf("dataset: node %q: nucleotide position %d outside reference (len %d)", id, pos+1, len(ds.Ref))
			}
		}
		for gene, m := range node.AaMuts {
			peptide, ok := ds.Peptides[gene]
			if !ok {
				continue // surfaces later as the per-gene non-fatal error
			}
			for pos := range m {
				if pos < 0 || pos >= len(peptide) {
					return fmt.Errorf("dataset: node %q: %s position %d outside peptide (len %d)", id, gene, pos+1, len(peptide))
				}
			}
		}
	}
	for _, g := range ds.GeneMap.Genes() {
		if g.End > len(ds.Ref) {
			return fmt.Errorf("dataset: gene %q ends at %d, beyond reference (len %d)", g.Name, g.End, len(ds.Ref))
		}
	}
	return nil
}

// splitAaMutation splits "S:N501Y" into gene and mutation.
func splitAaMutation(s string) (string, mut.Sub, error) {
	gene, rest, ok := strings.Cut(s, ":")
	if !ok || gene == "" {
		return "", mut.Sub{}, fmt.Errorf("invalid aminoacid mutation %q: want gene:mutation", s)
	}
	sub, err := mut.ParseSub(rest)
	if err != nil {
		return "", mut.Sub{}, err
	}
	return gene, sub, nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
