package state

import (
	"fmt"
	"slices"
)

// SectionSize is the number of array entries revealed at a time.
const SectionSize = 100

// Section is the half open index range [Start, End) of an array.
type Section struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Section) Len() int {
	return s.End - s.Start
}

func (s Section) Empty() bool {
	return s.End <= s.Start
}

func (s Section) Contains(i int) bool {
	return s.Start <= i && i < s.End
}

func (s Section) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// DefaultSection returns the section shown when an array of the given length
// is first expanded. Empty arrays have none.
func DefaultSection(length int) (Section, bool) {
	if length <= 0 {
		return Section{}, false
	}
	return Section{Start: 0, End: min(length, SectionSize)}, true
}

// SectionFor returns the SectionSize aligned section containing index i.
func SectionFor(i int) Section {
	start := i - i%SectionSize
	return Section{Start: start, End: start + SectionSize}
}

// Clip restricts s to [0, length).
func (s Section) Clip(length int) Section {
	s.Start = max(s.Start, 0)
	s.End = min(s.End, length)
	if s.End < s.Start {
		s.End = s.Start
	}
	return s
}

// MergeSections returns the sorted union of secs and s, coalescing
// overlapping and adjacent sections. secs is not modified.
func MergeSections(secs []Section, s Section) []Section {
	if s.Empty() {
		return secs
	}
	all := make([]Section, 0, len(secs)+1)
	all = append(all, secs...)
	all = append(all, s)
	return normalizeSections(all)
}

func normalizeSections(secs []Section) []Section {
	secs = slices.DeleteFunc(secs, Section.Empty)
	if len(secs) == 0 {
		return nil
	}
	slices.SortFunc(secs, func(a, b Section) int {
		return a.Start - b.Start
	})
	res := secs[:1]
	for _, s := range secs[1:] {
		last := &res[len(res)-1]
		if s.Start <= last.End {
			last.End = max(last.End, s.End)
			continue
		}
		res = append(res, s)
	}
	return res
}

// clipSections clips every section to length, dropping empty ones. The input
// is returned when nothing changes.
func clipSections(secs []Section, length int) []Section {
	changed := false
	for _, s := range secs {
		if s.Clip(length) != s || s.Empty() {
			changed = true
			break
		}
	}
	if !changed {
		return secs
	}
	res := make([]Section, 0, len(secs))
	for _, s := range secs {
		if c := s.Clip(length); !c.Empty() {
			res = append(res, c)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

func inSections(secs []Section, i int) bool {
	for _, s := range secs {
		if s.Contains(i) {
			return true
		}
	}
	return false
}

// sectionIndices calls fn for every index in secs below length.
func sectionIndices(secs []Section, length int, fn func(int)) {
	for _, s := range secs {
		for i := max(s.Start, 0); i < min(s.End, length); i++ {
			fn(i)
		}
	}
}

// insertSections shifts secs for an entry inserted at i. A section with
// Start <= i <= End grows to cover the new entry.
func insertSections(secs []Section, i int) []Section {
	if len(secs) == 0 {
		return secs
	}
	res := make([]Section, len(secs))
	for j, s := range secs {
		switch {
		case i < s.Start:
			s.Start++
			s.End++
		case i <= s.End:
			s.End++
		}
		res[j] = s
	}
	return normalizeSections(res)
}

// removeSections shifts secs for the entry removed at i.
func removeSections(secs []Section, i int) []Section {
	if len(secs) == 0 {
		return secs
	}
	res := make([]Section, len(secs))
	for j, s := range secs {
		switch {
		case i < s.Start:
			s.Start--
			s.End--
		case i < s.End:
			s.End--
		}
		res[j] = s
	}
	return normalizeSections(res)
}
