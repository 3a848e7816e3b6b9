// core/genemap/genemap.go
package genemap

import (
	"fmt"
	"sort"
)

// Gene is one gene's coordinate frame on the reference genome.
// Coordinates are 0-based half-open; Frame is the codon offset at Start.
type Gene struct {
	Name   string
	Start  int
	End    int
	Strand string // "+" or "-"
	Frame  int
}

// GeneMap is the authoritative, immutable gene list of a run.
// Iteration order is fixed at construction: ascending start coordinate,
// ties broken by name, so every consumer sees the same order.
type GeneMap struct {
	genes  []Gene
	byName map[string]int
}

// New validates and orders the gene list.
func New(genes []Gene) (*GeneMap, error) {
	ordered := append([]Gene(nil), genes...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].Name < ordered[j].Name
	})

	byName := make(map[string]int, len(ordered))
	for i, g := range ordered {
		if g.Name == "" {
			return nil, fmt.Errorf("gene map: gene %d has no name", i)
		}
		if g.Start < 0 {
			return nil, fmt.Errorf("gene map: gene %q has negative start %d", g.Name, g.Start)
		}
		if g.End <= g.Start {
			return nil, fmt.Errorf("gene map: gene %q has empty range %d..%d", g.Name, g.Start, g.End)
		}
		if g.Strand != "+" && g.Strand != "-" {
			return nil, fmt.Errorf("gene map: gene %q has invalid strand %q", g.Name, g.Strand)
		}
		if _, dup := byName[g.Name]; dup {
			return nil, fmt.Errorf("gene map: duplicate gene %q", g.Name)
		}
		byName[g.Name] = i
	}
	return &GeneMap{genes: ordered, byName: byName}, nil
}

// Genes returns the ordered gene list. Callers must not modify it.
func (m *GeneMap) Genes() []Gene { return m.genes }

// Get looks a gene up by name.
func (m *GeneMap) Get(name string) (Gene, bool) {
	i, ok := m.byName[name]
	if !ok {
		return Gene{}, false
	}
	return m.genes[i], true
}

// Len returns the number of genes.
func (m *GeneMap) Len() int { return len(m.genes) }
