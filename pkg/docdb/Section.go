package docdb


//=========================================== Section


func NewSection(index int, path string) *Section {
	return &Section{ Index: index, Path: path }
}

func (s *Section) Occupant() (string, bool) {
	occupant := s.occupant.Load()
	if occupant == nil { return "", false }

	return *occupant, true
}

func (s *Section) IsOccupied() bool {
	return s.occupant.Load() != nil
}

/*
	Occupy:
		null --> user only
*/

func (s *Section) Occupy(user string) bool {
	return s.occupant.CompareAndSwap(nil, &user)
}

/*
	Release:
		user --> null only, releasing on behalf of anyone but the current occupant fails
*/

func (s *Section) Release(user string) bool {
	current := s.occupant.Load()
	if current == nil || *current != user { return false }

	return s.occupant.CompareAndSwap(current, nil)
}

func (s *Section) record() SectionRecord {
	occupant, _ := s.Occupant()
	return SectionRecord{ Index: s.Index, Path: s.Path, Occupant: occupant }
}

func sectionFromRecord(rec SectionRecord) *Section {
	section := NewSection(rec.Index, rec.Path)
	if rec.Occupant != "" { section.Occupy(rec.Occupant) }

	return section
}
