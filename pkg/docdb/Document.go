package docdb

import "sort"


//=========================================== Document


func (d *Document) HasPermit(user string) bool {
	return d.IsCreator(user) || d.IsAuthor(user)
}

func (d *Document) IsCreator(user string) bool {
	return user == d.Creator
}

func (d *Document) IsAuthor(user string) bool {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	return d.authors[user]
}

func (d *Document) AddAuthor(user string) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.authors[user] { return false }

	d.authors[user] = true
	return true
}

func (d *Document) Authors() []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	authors := make([]string, 0, len(d.authors))
	for author := range d.authors { authors = append(authors, author) }

	sort.Strings(authors)
	return authors
}

func (d *Document) Section(index int) (*Section, bool) {
	if index < 0 || index >= len(d.Sections) { return nil, false }
	return d.Sections[index], true
}

func (d *Document) OccupiedSections() []int {
	occupied := []int{}
	for _, section := range d.Sections {
		if section.IsOccupied() { occupied = append(occupied, section.Index) }
	}

	return occupied
}

func (d *Document) HasOccupiedSection() bool {
	for _, section := range d.Sections {
		if section.IsOccupied() { return true }
	}

	return false
}

func (d *Document) record() DocumentRecord {
	sections := make([]SectionRecord, len(d.Sections))
	for idx, section := range d.Sections { sections[idx] = section.record() }

	return DocumentRecord{
		Name: d.Name,
		Creator: d.Creator,
		Authors: d.Authors(),
		Sections: sections,
	}
}

func documentFromRecord(rec DocumentRecord) *Document {
	authors := make(map[string]bool, len(rec.Authors))
	for _, author := range rec.Authors { authors[author] = true }

	sections := make([]*Section, len(rec.Sections))
	for idx, sec := range rec.Sections { sections[idx] = sectionFromRecord(sec) }

	return &Document{
		Name: rec.Name,
		Creator: rec.Creator,
		Sections: sections,
		authors: authors,
	}
}
