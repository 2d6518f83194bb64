package docdb

import "errors"
import "sync"
import "sync/atomic"


/*
	Section
		the occupant slot is a compare and swap pointer, a contended claim fails immediately instead of waiting
*/

type Section struct {
	Index int
	Path string

	occupant atomic.Pointer[string]
}

type Document struct {
	Name string
	Creator string
	Sections []*Section

	mutex sync.RWMutex
	authors map[string]bool
}

type DocumentDirectory struct {
	mutex sync.RWMutex
	documents map[string]*Document
	dataDir string
}

type SectionRecord struct {
	Index int
	Path string
	Occupant string
}

type DocumentRecord struct {
	Name string
	Creator string
	Authors []string
	Sections []SectionRecord
}

const NAME = "DocDB"
const SectionExtension = ".section"

var (
	ErrDocumentExists = errors.New("document already exists")
	ErrInvalidName = errors.New("invalid document name")
	ErrInvalidSectionCount = errors.New("section count must be positive")
)
