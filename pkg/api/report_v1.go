// pkg/api/report_v1.go
package api

// LabeledMutationV1 is a private mutation together with its catalog labels.
type LabeledMutationV1 struct {
	Mutation string   `json:"mutation"`
	Labels   []string `json:"labels"`
}

// PrivateMutationsV1 is the stable JSON schema for one alphabet level's
// private mutations. Mutation strings are 1-based ("C1235T", "A67-").
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type PrivateMutationsV1 struct {
	TotalSubstitutions int `json:"total_substitutions"`
	TotalDeletions     int `json:"total_deletions"`
	TotalReversions    int `json:"total_reversions"`

	Substitutions []string `json:"substitutions,omitempty"`
	Deletions     []string `json:"deletions,omitempty"`
	Reversions    []string `json:"reversions,omitempty"`

	LabeledSubstitutions   []LabeledMutationV1 `json:"labeled_substitutions,omitempty"`
	UnlabeledSubstitutions []string            `json:"unlabeled_substitutions,omitempty"`
	LabeledDeletions       []LabeledMutationV1 `json:"labeled_deletions,omitempty"`
	UnlabeledDeletions     []string            `json:"unlabeled_deletions,omitempty"`
}

// ReportV1 is the stable per-query report schema.
type ReportV1 struct {
	SeqName       string                        `json:"seq_name"`
	NearestNodeID string                        `json:"nearest_node_id"`
	NucMutations  PrivateMutationsV1            `json:"private_nuc_mutations"`
	AaMutations   map[string]PrivateMutationsV1 `json:"private_aa_mutations,omitempty"`
	Warnings      []string                      `json:"warnings,omitempty"`
}
