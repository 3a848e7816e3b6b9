// internal/input/queries.go
package input

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"nextclade-core/mut"
	"nextclade-core/query"
)

// Record pairs one query's analysis result with the tree node it was
// placed against.
type Record struct {
	Query  query.Result
	NodeID string
}

// recordJSON is the wire form of one analysis record. Ranges are
// 0-based half-open; mutation strings are 1-based.
type recordJSON struct {
	SeqName       string   `json:"seq_name"`
	NearestNodeID string   `json:"nearest_node_id"`
	Substitutions []string `json:"substitutions"`
	Deletions     []struct {
		Begin int `json:"begin"`
		End   int `json:"end"`
	} `json:"deletions"`
	Missing []struct {
		Begin int `json:"begin"`
		End   int `json:"end"`
	} `json:"missing"`
	Alignment struct {
		Begin int `json:"begin"`
		End   int `json:"end"`
	} `json:"alignment"`
	AaSubstitutions []string `json:"aa_substitutions"`
	AaDeletions     []string `json:"aa_deletions"`
	AaUnknowns      []struct {
		Gene  string `json:"gene"`
		Begin int    `json:"begin"`
		End   int    `json:"end"`
	} `json:"aa_unknowns"`
}

// ReadFile reads a JSON array of analysis records ("-" = stdin).
func ReadFile(path string) ([]Record, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	recs, err := ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ReadAll decodes and converts every record.
func ReadAll(r io.Reader) ([]Record, error) {
	var raw []recordJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(raw))
	for i, rec := range raw {
		conv, err := convert(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, rec.SeqName, err)
		}
		out = append(out, conv)
	}
	return out, nil
}

func convert(rec recordJSON) (Record, error) {
	if rec.SeqName == "" {
		return Record{}, fmt.Errorf("seq_name is required")
	}
	if rec.NearestNodeID == "" {
		return Record{}, fmt.Errorf("nearest_node_id is required")
	}
	if rec.Alignment.End <= rec.Alignment.Begin {
		return Record{}, fmt.Errorf("alignment range %d..%d is empty", rec.Alignment.Begin, rec.Alignment.End)
	}

	q := query.Result{
		SeqName:   rec.SeqName,
		Alignment: mut.Range{Begin: rec.Alignment.Begin, End: rec.Alignment.End},
	}
	for _, s := range rec.Substitutions {
		sub, err := mut.ParseSub(s)
		if err != nil {
			return Record{}, err
		}
		if !mut.IsCanonicalNuc(sub.Qry) {
			return Record{}, fmt.Errorf("substitution %q has ambiguous query state %q", s, string(sub.Qry))
		}
		q.Substitutions = append(q.Substitutions, sub)
	}
	for _, d := range rec.Deletions {
		if d.End <= d.Begin {
			return Record{}, fmt.Errorf("deletion range %d..%d is empty", d.Begin, d.End)
		}
		q.Deletions = append(q.Deletions, mut.Range{Begin: d.Begin, End: d.End})
	}
	for _, m := range rec.Missing {
		q.Missing = append(q.Missing, mut.Range{Begin: m.Begin, End: m.End})
	}

	genes := map[string]query.GeneResult{}
	for _, s := range rec.AaSubstitutions {
		gene, sub, err := splitAa(s)
		if err != nil {
			return Record{}, err
		}
		g := genes[gene]
		g.Substitutions = append(g.Substitutions, sub)
		genes[gene] = g
	}
	for _, s := range rec.AaDeletions {
		gene, sub, err := splitAa(s)
		if err != nil {
			return Record{}, err
		}
		if sub.Qry != mut.Gap {
			return Record{}, fmt.Errorf("aa deletion %q does not end in %q", s, string(mut.Gap))
		}
		g := genes[gene]
		g.Deletions = append(g.Deletions, mut.Del{Pos: sub.Pos, Ref: sub.Ref})
		genes[gene] = g
	}
	for _, u := range rec.AaUnknowns {
		if u.Gene == "" {
			return Record{}, fmt.Errorf("aa unknown range without gene")
		}
		g := genes[u.Gene]
		g.Unknowns = append(g.Unknowns, mut.Range{Begin: u.Begin, End: u.End})
		genes[u.Gene] = g
	}
	if len(genes) > 0 {
		q.Genes = genes
	}

	return Record{Query: q, NodeID: rec.NearestNodeID}, nil
}

func splitAa(s string) (string, mut.Sub, error) {
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
