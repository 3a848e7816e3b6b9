// core/privatemut/diff.go
package privatemut

import (
	"fmt"
	"sort"

	"nextclade-core/mut"
)

/* ----------------------- types --------------------- */

// Mutations is the private-mutation record for one query against one
// tree node, at one alphabet level. All slices are ordered by ascending
// position. Substitutions, Reversions and Deletions are disjoint;
// the labeled/unlabeled pairs partition Substitutions and Deletions.
type Mutations struct {
	Substitutions []mut.Sub // query changed a state the node did not share
	Deletions     []mut.Del // query deleted a state the node did not share
	Reversions    []mut.Sub // query restored the reference state the node had changed

	LabeledSubstitutions   []mut.LabeledSub
	UnlabeledSubstitutions []mut.Sub
	LabeledDeletions       []mut.LabeledDel
	UnlabeledDeletions     []mut.Del
}

// Total returns the number of private changes of any kind.
func (m Mutations) Total() int {
	return len(m.Substitutions) + len(m.Deletions) + len(m.Reversions)
}

// seqView adapts one alphabet to the shared diff. node holds the tree
// node's states by position, qry the query's explicit states (deletions
// as Gap). Positions absent from either map implicitly equal the
// reference. sequenced reports whether the query carries information at
// a position; unsequenced positions are never classified.
type seqView struct {
	node      map[int]byte
	qry       map[int]byte
	ref       []byte
	sequenced func(pos int) bool
}

/* --------------------- shared diff ----------------- */

// findPrivate classifies every position where query and node disagree.
// Positions where both carry the same state are never reported.
func findPrivate(v seqView, subLabels mut.SubLabelIndex, delLabels mut.DelLabelIndex) Mutations {
	positions := make([]int, 0, len(v.node)+len(v.qry))
	for pos := range v.node {
		positions = append(positions, pos)
	}
	for pos := range v.qry {
		if _, both := v.node[pos]; !both {
			positions = append(positions, pos)
		}
	}
	sort.Ints(positions)

	var out Mutations
	for _, pos := range positions {
		if pos < 0 || pos >= len(v.ref) {
			// Caller contract violation, not recoverable input.
			panic(fmt.Sprintf("private mutations: position %d outside reference of length %d", pos, len(v.ref)))
		}
		if !v.sequenced(pos) {
			continue // ambiguous or missing in the query: cannot classify
		}

		ref := v.ref[pos]
		qry, qryExplicit := v.qry[pos]
		if !qryExplicit {
			qry = ref
		}
		node, nodeDefined := v.node[pos]
		if !nodeDefined {
			node = ref
		}
		if qry == node {
			continue // shared with the node, not private
		}

		switch {
		case nodeDefined && qry == ref:
			out.Reversions = append(out.Reversions, mut.Sub{Pos: pos, Ref: node, Qry: qry})
		case qry == mut.Gap:
			d := mut.Del{Pos: pos, Ref: node}
			out.Deletions = append(out.Deletions, d)
			if labels, ok := delLabels[d]; ok {
				out.LabeledDeletions = append(out.LabeledDeletions, mut.LabeledDel{Del: d, Labels: labels})
			} else {
				out.UnlabeledDeletions = append(out.UnlabeledDeletions, d)
			}
		default:
			s := mut.Sub{Pos: pos, Ref: node, Qry: qry}
			out.Substitutions = append(out.Substitutions, s)
			if labels, ok := subLabels[s]; ok {
				out.LabeledSubstitutions = append(out.LabeledSubstitutions, mut.LabeledSub{Sub: s, Labels: labels})
			} else {
				out.UnlabeledSubstitutions = append(out.UnlabeledSubstitutions, s)
			}
		}
	}
	return out
}
