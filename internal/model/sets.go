package model

import "fmt"

// Label derives the display label for the set at 0-based index i. In normal
// mode sets are numbered sequentially; in left/right mode consecutive sets
// form pairs sharing one number, even index left, odd index right.
func Label(i int, mode Mode) string {
	if mode == ModeLeftRight {
		pair := i/2 + 1
		side := "links"
		if i%2 == 1 {
			side = "rechts"
		}
		return fmt.Sprintf("Satz %d (%s)", pair, side)
	}
	return fmt.Sprintf("Satz %d", i+1)
}

// RelabelSets recomputes every label from scratch. Labels are a pure
// function of (index, mode), so any structural change relabels the whole
// list rather than patching neighbors.
func (e *Exercise) RelabelSets() {
	for i := range e.Sets {
		e.Sets[i].Label = Label(i, e.Mode)
	}
}

// AddSet appends a set, or a left/right pair when the exercise is in
// left/right mode.
func (e *Exercise) AddSet() {
	n := len(e.Sets)
	e.Sets = append(e.Sets, NewSet(n, e.Mode))
	if e.Mode == ModeLeftRight {
		e.Sets = append(e.Sets, NewSet(n+1, e.Mode))
	}
}

// RemoveSet removes the set at i and relabels. The last remaining set
// cannot be removed.
func (e *Exercise) RemoveSet(i int) bool {
	if len(e.Sets) <= 1 || i < 0 || i >= len(e.Sets) {
		return false
	}
	e.Sets = append(e.Sets[:i], e.Sets[i+1:]...)
	e.RelabelSets()
	return true
}

// SwitchMode converts the set list to the new mode, preserving values
// positionally. Going to left/right, existing sets become pair halves and
// an odd count is padded with a default right half. Going to normal, the
// pairs are flattened in order, nothing is merged or dropped.
func (e *Exercise) SwitchMode(newMode Mode) {
	if newMode == e.Mode {
		return
	}
	old := e.Sets
	e.Mode = newMode

	if newMode == ModeLeftRight {
		pairs := (len(old) + 1) / 2
		if pairs < 1 {
			pairs = 1
		}
		sets := make([]Set, 0, pairs*2)
		for i := 0; i < pairs*2; i++ {
			s := NewSet(i, ModeLeftRight)
			if i < len(old) {
				s.Reps = old[i].Reps
				s.RPE = old[i].RPE
				s.Note = old[i].Note
			}
			sets = append(sets, s)
		}
		e.Sets = sets
		return
	}

	count := len(old)
	if count < 1 {
		count = 1
	}
	sets := make([]Set, 0, count)
	for i := 0; i < count; i++ {
		s := NewSet(i, ModeNormal)
		if i < len(old) {
			s.Reps = old[i].Reps
			s.RPE = old[i].RPE
			s.Note = old[i].Note
		}
		sets = append(sets, s)
	}
	e.Sets = sets
}
