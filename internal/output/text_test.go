// internal/output/text_test.go
package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bgruening/nextclade/pkg/api"
)

func TestWriteText(t *testing.T) {
	rep := api.ReportV1{
		SeqName:       "q1",
		NearestNodeID: "node_1",
		NucMutations: api.PrivateMutationsV1{
			TotalSubstitutions: 1,
			TotalDeletions:     1,
			TotalReversions:    1,
			Substitutions:      []string{"G2T"},
			Deletions:          []string{"A5-"},
			Reversions:         []string{"G9C"},
			LabeledSubstitutions: []api.LabeledMutationV1{
				{Mutation: "G2T", Labels: []string{"20A", "20B"}},
			},
		},
		AaMutations: map[string]api.PrivateMutationsV1{
			"S": {TotalSubstitutions: 1, Substitutions: []string{"Y2L"}},
		},
	}

	var buf bytes.Buffer
	if err := WriteHeader(&buf); err != nil {
		t.Fatal(err)
	}
	if err := WriteText(&buf, []api.ReportV1{rep}); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		Header,
		"q1\tnode_1\tnuc\t\tsubstitution\tG2T\t20A,20B",
		"q1\tnode_1\tnuc\t\tdeletion\tA5-\t",
		"q1\tnode_1\tnuc\t\treversion\tG9C\t",
		"q1\tnode_1\taa\tS\tsubstitution\tY2L\t",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("text output:\n%q\nwant:\n%q", got, want)
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	reports := []api.ReportV1{{SeqName: "q1", NearestNodeID: "n"}}
	if err := WriteJSON(&buf, reports); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"seq_name": "q1"`, `"nearest_node_id": "n"`, `"total_substitutions": 0`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %q:\n%s", want, out)
		}
	}
}
