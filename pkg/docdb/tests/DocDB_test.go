package docdbtests

import "errors"
import "os"
import "reflect"
import "sync"
import "sync/atomic"
import "testing"

import "github.com/sirgallo/rdoc/pkg/docdb"


func TestSectionOccupancyAlternates(t *testing.T) {
	section := docdb.NewSection(0, "unused")

	if ! section.Occupy("bob") { t.Errorf("first occupy should succeed\n") }
	if section.Occupy("alice") { t.Errorf("occupy on a held section should fail\n") }
	if section.Occupy("bob") { t.Errorf("re-occupy by the holder should fail\n") }
	if section.Release("alice") { t.Errorf("release by a non occupant should fail\n") }

	occupant, occupied := section.Occupant()
	t.Logf("actual occupant: %s, expected: bob\n", occupant)
	if ! occupied || occupant != "bob" { t.Errorf("occupant actual(%s), expected(bob)\n", occupant) }

	if ! section.Release("bob") { t.Errorf("release by the occupant should succeed\n") }
	if section.Release("bob") { t.Errorf("double release should fail\n") }
	if section.IsOccupied() { t.Errorf("section should be free after release\n") }

	if ! section.Occupy("alice") { t.Errorf("occupy after release should succeed\n") }
}

func TestConcurrentOccupyExactlyOne(t *testing.T) {
	section := docdb.NewSection(0, "unused")

	var wg sync.WaitGroup
	var winners int32

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if section.Occupy(string(rune('a' + i % 26)) + "user") { atomic.AddInt32(&winners, 1) }
		}(i)
	}

	wg.Wait()

	t.Logf("actual winners: %d, expected: 1\n", winners)
	if winners != 1 { t.Errorf("concurrent occupy winners actual(%d), expected(1)\n", winners) }
}

func TestCreateDocument(t *testing.T) {
	docs := docdb.NewDocumentDirectory(t.TempDir())

	doc, createErr := docs.Create("doc1", "alice", 2)
	if createErr != nil { t.Fatalf("create failed: %s\n", createErr.Error()) }

	if len(doc.Sections) != 2 { t.Errorf("section count actual(%d), expected(2)\n", len(doc.Sections)) }

	for _, section := range doc.Sections {
		expectedPath := docdb.SectionPath(docs.DataDir(), "doc1", section.Index)
		if section.Path != expectedPath { t.Errorf("section path actual(%s), expected(%s)\n", section.Path, expectedPath) }

		_, statErr := os.Stat(section.Path)
		if statErr != nil { t.Errorf("section file missing: %s\n", statErr.Error()) }
	}

	_, dupErr := docs.Create("doc1", "bob", 1)
	if ! errors.Is(dupErr, docdb.ErrDocumentExists) { t.Errorf("duplicate create actual(%v), expected(%v)\n", dupErr, docdb.ErrDocumentExists) }

	_, nameErr := docs.Create("../escape", "bob", 1)
	if ! errors.Is(nameErr, docdb.ErrInvalidName) { t.Errorf("path name actual(%v), expected(%v)\n", nameErr, docdb.ErrInvalidName) }

	_, countErr := docs.Create("empty", "bob", 0)
	if ! errors.Is(countErr, docdb.ErrInvalidSectionCount) { t.Errorf("zero sections actual(%v), expected(%v)\n", countErr, docdb.ErrInvalidSectionCount) }
}

func TestPermissionsAndNames(t *testing.T) {
	docs := docdb.NewDocumentDirectory(t.TempDir())
	docs.Create("b-doc", "alice", 1)
	docs.Create("a-doc", "carol", 1)

	doc, _ := docs.Get("a-doc")
	if doc.HasPermit("alice") { t.Errorf("alice should not have access to a-doc yet\n") }

	doc.AddAuthor("alice")
	if ! doc.HasPermit("alice") || doc.IsCreator("alice") { t.Errorf("alice should be an author but not the creator\n") }

	names := docs.NamesFor("alice")
	expected := []string{ "a-doc", "b-doc" }
	t.Logf("actual names: %v, expected: %v\n", names, expected)
	if ! reflect.DeepEqual(names, expected) { t.Errorf("names actual(%v), expected(%v)\n", names, expected) }

	if len(docs.NamesFor("nobody")) != 0 { t.Errorf("unknown user should own nothing\n") }
}

func TestSectionContentAndConcatenation(t *testing.T) {
	docs := docdb.NewDocumentDirectory(t.TempDir())
	doc, _ := docs.Create("doc1", "alice", 3)

	docs.WriteSection(doc.Sections[0], []byte("hello "))
	docs.WriteSection(doc.Sections[2], []byte("world"))

	content, readErr := docs.ReadDocument(doc)
	if readErr != nil { t.Fatalf("read failed: %s\n", readErr.Error()) }

	t.Logf("actual content: %s, expected: hello world\n", string(content))
	if string(content) != "hello world" { t.Errorf("content actual(%s), expected(hello world)\n", string(content)) }
}

func TestSnapshotRestore(t *testing.T) {
	docs := docdb.NewDocumentDirectory(t.TempDir())
	doc, _ := docs.Create("doc1", "alice", 2)
	doc.AddAuthor("bob")
	doc.Sections[1].Occupy("bob")

	snapshot := docs.Snapshot()

	restored := docdb.NewDocumentDirectory(t.TempDir())
	restored.Restore(snapshot)

	if ! reflect.DeepEqual(restored.Snapshot(), snapshot) {
		t.Errorf("restored snapshot actual(%v), expected(%v)\n", restored.Snapshot(), snapshot)
	}

	restoredDoc, _ := restored.Get("doc1")
	occupied := restoredDoc.OccupiedSections()
	if ! reflect.DeepEqual(occupied, []int{ 1 }) { t.Errorf("occupied actual(%v), expected([1])\n", occupied) }
}
