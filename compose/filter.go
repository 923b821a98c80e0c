package compose

// FilterState is the small opaque value a composition filter attaches
// to each product state alongside the (stateA, stateB) pair.
type FilterState int8

const (
	// filterPlain: no pending epsilon run.
	filterPlain FilterState = 0

	// filterEpsA: an epsilon run on the A side is in progress.
	filterEpsA FilterState = 1

	// filterEpsB: an epsilon run on the B side is in progress.
	filterEpsB FilterState = 2

	// filterBlocked: the move is inadmissible.
	filterBlocked FilterState = -1
)

// move classifies one candidate step of the product construction with
// respect to the shared tape (A's output against B's input).
type move int8

const (
	// moveMatch: both sides advance on a shared non-epsilon label.
	moveMatch move = iota

	// moveBothEps: both sides advance on epsilon simultaneously.
	moveBothEps

	// moveA: A advances on an epsilon output while B stands still.
	moveA

	// moveB: B advances on an epsilon input while A stands still.
	moveB
)

// filter is the epsilon-interleaving state machine: step answers
// whether a move is admissible in the given filter state and, if so,
// which filter state the product arc leads to (filterBlocked if not).
//
// The contract behind all variants: for any pair of epsilon runs of
// lengths (i, j) between two matched labels, exactly one interleaving
// of the i+j single-side (or joint) steps is admitted, so no product
// path is double-counted and none is dropped.
type filter interface {
	start() FilterState
	step(m move, fs FilterState) FilterState
}

// sequenceFilter admits epsilon runs in the canonical order "all A
// steps, then all B steps". Joint epsilon moves are never admitted;
// they are realized as an A step followed by a B step.
type sequenceFilter struct{}

func (sequenceFilter) start() FilterState { return filterPlain }

func (sequenceFilter) step(m move, fs FilterState) FilterState {
	switch m {
	case moveMatch:
		return filterPlain
	case moveA:
		// A may not move on epsilon once B has: that interleaving is
		// already covered by taking the A step earlier.
		if fs == filterEpsB {
			return filterBlocked
		}

		return filterPlain
	case moveB:
		return filterEpsB
	default: // moveBothEps
		return filterBlocked
	}
}

// altSequenceFilter is the mirror image: all B steps, then all A steps.
type altSequenceFilter struct{}

func (altSequenceFilter) start() FilterState { return filterPlain }

func (altSequenceFilter) step(m move, fs FilterState) FilterState {
	switch m {
	case moveMatch:
		return filterPlain
	case moveB:
		if fs == filterEpsA {
			return filterBlocked
		}

		return filterPlain
	case moveA:
		return filterEpsA
	default: // moveBothEps
		return filterBlocked
	}
}

// matchFilter prefers joint epsilon moves: both sides step together
// while both have epsilons, then the longer side finishes alone. Once a
// side has moved alone, neither joint moves nor the other side's solo
// moves are admitted until the next label match.
type matchFilter struct{}

func (matchFilter) start() FilterState { return filterPlain }

func (matchFilter) step(m move, fs FilterState) FilterState {
	switch m {
	case moveMatch:
		return filterPlain
	case moveBothEps:
		if fs != filterPlain {
			return filterBlocked
		}

		return filterPlain
	case moveA:
		if fs == filterEpsB {
			return filterBlocked
		}

		return filterEpsA
	default: // moveB
		if fs == filterEpsA {
			return filterBlocked
		}

		return filterEpsB
	}
}

// trivialFilter admits everything. Correct only when at most one side
// has epsilons on the shared tape, where no interleaving ambiguity can
// arise; the auto selector proves that before picking it.
type trivialFilter struct{}

func (trivialFilter) start() FilterState { return filterPlain }

func (trivialFilter) step(move, FilterState) FilterState { return filterPlain }

// newFilter instantiates the enumerated filter.
func newFilter(ft FilterType) (filter, error) {
	switch ft {
	case SequenceFilter:
		return sequenceFilter{}, nil
	case AltSequenceFilter:
		return altSequenceFilter{}, nil
	case MatchFilter:
		return matchFilter{}, nil
	case NoEpsilonFilter:
		return trivialFilter{}, nil
	default:
		return nil, ErrUnknownFilter
	}
}
