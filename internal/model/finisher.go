package model

import "github.com/google/uuid"

// FinisherType selects the finisher's shape: AMRAP and EMOM entries are
// result-based, NORMAL entries carry their own set lists.
type FinisherType string

const (
	FinisherAMRAP  FinisherType = "AMRAP"
	FinisherEMOM   FinisherType = "EMOM"
	FinisherNormal FinisherType = "NORMAL"
)

// Finisher is an optional circuit appended to a workout. A nil Finisher on
// the workout means disabled.
type Finisher struct {
	Type    FinisherType    `json:"type"`
	Entries []FinisherEntry `json:"entries"`
}

// FinisherEntry holds either a result (AMRAP/EMOM) or a set list (NORMAL);
// the fields for the inactive shape stay zero.
type FinisherEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Result string `json:"result"`
	RPE    int    `json:"rpe"`
	Note   string `json:"note"`
	Sets   []Set  `json:"sets"`
}

func NewFinisherEntry() FinisherEntry {
	return FinisherEntry{ID: uuid.NewString(), RPE: defaultRPE}
}

// NewFinisher returns an enabled finisher of the given type with one entry.
func NewFinisher(t FinisherType) *Finisher {
	f := &Finisher{Type: t, Entries: []FinisherEntry{NewFinisherEntry()}}
	if t == FinisherNormal {
		f.Entries[0].Sets = []Set{NewSet(0, ModeNormal)}
	}
	return f
}

func (f *Finisher) Clone() *Finisher {
	if f == nil {
		return nil
	}
	c := &Finisher{Type: f.Type, Entries: make([]FinisherEntry, len(f.Entries))}
	for i, e := range f.Entries {
		c.Entries[i] = e
		c.Entries[i].Sets = append([]Set(nil), e.Sets...)
	}
	return c
}

// AddEntry appends an empty entry shaped for the finisher's type.
func (f *Finisher) AddEntry() {
	e := NewFinisherEntry()
	if f.Type == FinisherNormal {
		e.Sets = []Set{NewSet(0, ModeNormal)}
	}
	f.Entries = append(f.Entries, e)
}

// RemoveEntry removes the entry at i. The last remaining entry cannot be
// removed.
func (f *Finisher) RemoveEntry(i int) bool {
	if len(f.Entries) <= 1 || i < 0 || i >= len(f.Entries) {
		return false
	}
	f.Entries = append(f.Entries[:i], f.Entries[i+1:]...)
	return true
}

// SwitchType changes the finisher's type in place. Entry identity and name
// survive; the structural data of the old shape does not. Switching between
// the two result-based types keeps result, RPE and note.
func (f *Finisher) SwitchType(newType FinisherType) {
	if newType == f.Type {
		return
	}
	oldType := f.Type
	f.Type = newType

	resultBased := func(t FinisherType) bool { return t != FinisherNormal }
	if resultBased(oldType) && resultBased(newType) {
		return
	}

	for i := range f.Entries {
		e := &f.Entries[i]
		if newType == FinisherNormal {
			e.Result = ""
			e.Note = ""
			e.RPE = defaultRPE
			e.Sets = []Set{NewSet(0, ModeNormal)}
		} else {
			e.Sets = nil
			e.Result = ""
			e.Note = ""
			e.RPE = defaultRPE
		}
	}
	if len(f.Entries) == 0 {
		f.AddEntry()
	}
}
