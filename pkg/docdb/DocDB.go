package docdb

import "fmt"
import "os"
import "sort"


//=========================================== Document Directory


func NewDocumentDirectory(dataDir string) *DocumentDirectory {
	return &DocumentDirectory{
		documents: make(map[string]*Document),
		dataDir: dataDir,
	}
}

func (dd *DocumentDirectory) DataDir() string {
	return dd.dataDir
}

func (dd *DocumentDirectory) Get(name string) (*Document, bool) {
	dd.mutex.RLock()
	defer dd.mutex.RUnlock()

	doc, exists := dd.documents[name]
	return doc, exists
}

func (dd *DocumentDirectory) Exists(name string) bool {
	_, exists := dd.Get(name)
	return exists
}

/*
	Create:
		1.) validate the name and section count
		2.) build the document with count sections, each resolved to its own file under the data directory
		3.) create an empty content file per section
		4.) register the document, failing if the name was taken in the meantime
*/

func (dd *DocumentDirectory) Create(name string, creator string, sectionCount int) (*Document, error) {
	nameErr := ValidateName(name)
	if nameErr != nil { return nil, nameErr }
	if sectionCount <= 0 { return nil, ErrInvalidSectionCount }

	dd.mutex.Lock()
	defer dd.mutex.Unlock()

	_, exists := dd.documents[name]
	if exists { return nil, fmt.Errorf("%w: %s", ErrDocumentExists, name) }

	sections := make([]*Section, sectionCount)
	for idx := range sections {
		path := SectionPath(dd.dataDir, name, idx)

		createErr := WriteSectionFile(path, []byte{})
		if createErr != nil { return nil, createErr }

		sections[idx] = NewSection(idx, path)
	}

	doc := &Document{
		Name: name,
		Creator: creator,
		Sections: sections,
		authors: make(map[string]bool),
	}

	dd.documents[name] = doc
	return doc, nil
}

/*
	Names For:
		every document the user created or was shared on, sorted
*/

func (dd *DocumentDirectory) NamesFor(user string) []string {
	dd.mutex.RLock()
	defer dd.mutex.RUnlock()

	names := []string{}
	for name, doc := range dd.documents {
		if doc.HasPermit(user) { names = append(names, name) }
	}

	sort.Strings(names)
	return names
}

func (dd *DocumentDirectory) Documents() []*Document {
	dd.mutex.RLock()
	defer dd.mutex.RUnlock()

	docs := make([]*Document, 0, len(dd.documents))
	for _, doc := range dd.documents { docs = append(docs, doc) }

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs
}

func (dd *DocumentDirectory) Len() int {
	dd.mutex.RLock()
	defer dd.mutex.RUnlock()

	return len(dd.documents)
}

func (dd *DocumentDirectory) Snapshot() []DocumentRecord {
	docs := dd.Documents()

	records := make([]DocumentRecord, len(docs))
	for idx, doc := range docs { records[idx] = doc.record() }

	return records
}

/*
	Restore:
		replace the whole directory with the records, section paths are taken as given
*/

func (dd *DocumentDirectory) Restore(records []DocumentRecord) {
	restored := make(map[string]*Document, len(records))
	for _, rec := range records { restored[rec.Name] = documentFromRecord(rec) }

	dd.mutex.Lock()
	defer dd.mutex.Unlock()

	dd.documents = restored
}

/*
	Write Section:
		content is written to a temp file in the same directory and renamed over the section file
*/

func (dd *DocumentDirectory) WriteSection(section *Section, content []byte) error {
	return WriteSectionFile(section.Path, content)
}

func (dd *DocumentDirectory) ReadSection(section *Section) ([]byte, error) {
	return os.ReadFile(section.Path)
}

/*
	Read Document:
		concatenation of every section in order
*/

func (dd *DocumentDirectory) ReadDocument(doc *Document) ([]byte, error) {
	content := []byte{}
	for _, section := range doc.Sections {
		sectionContent, readErr := dd.ReadSection(section)
		if readErr != nil { return nil, readErr }

		content = append(content, sectionContent...)
	}

	return content, nil
}
