// core/privatemut/aa_test.go
package privatemut

import (
	"errors"
	"testing"

	"nextclade-core/genemap"
	"nextclade-core/mut"
	"nextclade-core/query"
)

func testGeneMap(t *testing.T, names ...string) *genemap.GeneMap {
	t.Helper()
	genes := make([]genemap.Gene, len(names))
	for i, n := range names {
		genes[i] = genemap.Gene{Name: n, Start: i * 100, End: i*100 + 30, Strand: "+"}
	}
	gm, err := genemap.New(genes)
	if err != nil {
		t.Fatalf("genemap.New: %v", err)
	}
	return gm
}

func TestFindPrivateAaMutations(t *testing.T) {
	gm := testGeneMap(t, "S", "N")
	refPeptides := map[string][]byte{
		"S": []byte("MFVFLV"),
		"N": []byte("MSDNGP"),
	}
	nodeMuts := map[string]map[int]byte{
		"S": {2: 'A'}, // node carries V3A (0-based pos 2)
	}
	seq := &query.Result{
		Genes: map[string]query.GeneResult{
			"S": {Substitutions: []mut.Sub{{Pos: 2, Ref: 'V', Qry: 'L'}}},
			"N": {Deletions: []mut.Del{{Pos: 1, Ref: 'S'}}},
		},
	}

	got, errs := FindPrivateAaMutations(nodeMuts, seq, refPeptides, gm, nil, nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	s := got["S"]
	if len(s.Substitutions) != 1 || s.Substitutions[0] != (mut.Sub{Pos: 2, Ref: 'A', Qry: 'L'}) {
		t.Errorf("S substitutions = %v", s.Substitutions)
	}
	n := got["N"]
	if len(n.Deletions) != 1 || n.Deletions[0] != (mut.Del{Pos: 1, Ref: 'S'}) {
		t.Errorf("N deletions = %v", n.Deletions)
	}
}

func TestMissingRefPeptideIsNonFatal(t *testing.T) {
	gm := testGeneMap(t, "A", "B")
	refPeptides := map[string][]byte{"A": []byte("MAAA")}
	seq := &query.Result{
		Genes: map[string]query.GeneResult{
			"A": {Substitutions: []mut.Sub{{Pos: 1, Ref: 'A', Qry: 'T'}}},
			"B": {Substitutions: []mut.Sub{{Pos: 0, Ref: 'M', Qry: 'I'}}},
		},
	}

	got, errs := FindPrivateAaMutations(nil, seq, refPeptides, gm, nil, nil)

	if _, ok := got["A"]; !ok {
		t.Errorf("gene A missing from result")
	}
	if _, ok := got["B"]; ok {
		t.Errorf("gene B should be absent from result")
	}
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want exactly one", errs)
	}
	var notFound *ErrRefPeptideNotFound
	if !errors.As(errs[0], &notFound) || notFound.Gene != "B" {
		t.Fatalf("error = %v, want ErrRefPeptideNotFound for gene B", errs[0])
	}
}

func TestAaNodeMapAbsentGeneMeansNoNodeMutations(t *testing.T) {
	gm := testGeneMap(t, "S")
	refPeptides := map[string][]byte{"S": []byte("MFVF")}
	seq := &query.Result{
		Genes: map[string]query.GeneResult{
			"S": {Substitutions: []mut.Sub{{Pos: 3, Ref: 'F', Qry: 'L'}}},
		},
	}

	got, errs := FindPrivateAaMutations(map[string]map[int]byte{}, seq, refPeptides, gm, nil, nil)
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	s := got["S"]
	if len(s.Substitutions) != 1 || s.Substitutions[0].Ref != 'F' {
		t.Errorf("substitutions = %v, want F4L private", s.Substitutions)
	}
}

func TestAaLabelsAreGeneScoped(t *testing.T) {
	gm := testGeneMap(t, "S", "N")
	refPeptides := map[string][]byte{"S": []byte("MFVF"), "N": []byte("MFVF")}
	seq := &query.Result{
		Genes: map[string]query.GeneResult{
			"S": {Substitutions: []mut.Sub{{Pos: 1, Ref: 'F', Qry: 'Y'}}},
			"N": {Substitutions: []mut.Sub{{Pos: 1, Ref: 'F', Qry: 'Y'}}},
		},
	}
	subLabels := map[string]mut.SubLabelIndex{
		"S": mut.BuildSubLabelIndex([]mut.SubLabel{
			{Sub: mut.Sub{Pos: 1, Ref: 'F', Qry: 'Y'}, Labels: []string{"marker"}},
		}),
	}

	got, _ := FindPrivateAaMutations(nil, seq, refPeptides, gm, subLabels, nil)

	if n := len(got["S"].LabeledSubstitutions); n != 1 {
		t.Errorf("S labeled = %d, want 1", n)
	}
	if n := len(got["N"].LabeledSubstitutions); n != 0 {
		t.Errorf("N labeled = %d, want 0 (label is S-scoped)", n)
	}
	if n := len(got["N"].UnlabeledSubstitutions); n != 1 {
		t.Errorf("N unlabeled = %d, want 1", n)
	}
}

func TestAaUnknownRangeExcluded(t *testing.T) {
	gm := testGeneMap(t, "S")
	refPeptides := map[string][]byte{"S": []byte("MFVF")}
	nodeMuts := map[string]map[int]byte{"S": {2: 'A'}}
	seq := &query.Result{
		Genes: map[string]query.GeneResult{
			"S": {Unknowns: []mut.Range{{Begin: 0, End: 4}}},
		},
	}

	got, _ := FindPrivateAaMutations(nodeMuts, seq, refPeptides, gm, nil, nil)
	if got["S"].Total() != 0 {
		t.Errorf("unsequenced gene produced mutations: %+v", got["S"])
	}
}

func TestAaAmbiguousSubstitutionExcluded(t *testing.T) {
	gm := testGeneMap(t, "S")
	refPeptides := map[string][]byte{"S": []byte("MFVF")}
	nodeMuts := map[string]map[int]byte{"S": {1: 'Y'}}
	seq := &query.Result{
		Genes: map[string]query.GeneResult{
			// X carries no information; without it the query would read
			// as a reversion, but ambiguity must win.
			"S": {
				Substitutions: []mut.Sub{{Pos: 1, Ref: 'F', Qry: 'X'}},
				Unknowns:      []mut.Range{{Begin: 1, End: 2}},
			},
		},
	}

	got, _ := FindPrivateAaMutations(nodeMuts, seq, refPeptides, gm, nil, nil)
	if got["S"].Total() != 0 {
		t.Errorf("ambiguous position classified: %+v", got["S"])
	}
}
