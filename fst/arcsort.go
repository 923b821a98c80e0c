package fst

import "sort"

// SortKey selects the label an ArcSort orders by.
type SortKey int

const (
	// ByILabel sorts arcs by input label (required by input-side
	// sorted matching).
	ByILabel SortKey = iota

	// ByOLabel sorts arcs by output label.
	ByOLabel
)

// ArcSort stably sorts the arcs of every state of v by the chosen
// label, breaking ties by the other label and then the destination, and
// records the corresponding sortedness property.
//
// Complexity: O(E log E) total over all states.
func ArcSort[W any](v *Vector[W], key SortKey) {
	var s StateID
	for s = range v.states {
		arcs := v.states[s].arcs
		sort.SliceStable(arcs, func(i, j int) bool {
			a, b := arcs[i], arcs[j]
			if key == ByILabel {
				if a.ILabel != b.ILabel {
					return a.ILabel < b.ILabel
				}
				if a.OLabel != b.OLabel {
					return a.OLabel < b.OLabel
				}
			} else {
				if a.OLabel != b.OLabel {
					return a.OLabel < b.OLabel
				}
				if a.ILabel != b.ILabel {
					return a.ILabel < b.ILabel
				}
			}

			return a.Next < b.Next
		})
	}

	if key == ByILabel {
		v.props |= ILabelSorted
		v.known |= ILabelSorted
		v.unknow(OLabelSorted)
	} else {
		v.props |= OLabelSorted
		v.known |= OLabelSorted
		v.unknow(ILabelSorted)
	}
}
