package storetests

import "path/filepath"
import "reflect"
import "testing"

import "github.com/sirgallo/rdoc/pkg/docdb"
import "github.com/sirgallo/rdoc/pkg/store"
import "github.com/sirgallo/rdoc/pkg/userdb"


func TestLoadMissingStartsEmpty(t *testing.T) {
	s := store.NewStore(filepath.Join(t.TempDir(), "server_data_1300"))

	users, docs, loadErr := s.Load()
	if loadErr != nil { t.Fatalf("load failed: %s\n", loadErr.Error()) }

	t.Logf("actual users: %d, docs: %d, expected: 0, 0\n", len(users), len(docs))
	if len(users) != 0 || len(docs) != 0 { t.Errorf("missing store should load empty\n") }
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "server_data_1300")

	userDir := userdb.NewUserDirectory()
	userDir.Insert("alice", "digest-a")
	userDir.Insert("bob", "digest-b")
	userDir.AppendNotification("bob", "alice shared doc1 with you")

	docDir := docdb.NewDocumentDirectory(dataDir)
	doc, _ := docDir.Create("doc1", "alice", 2)
	doc.AddAuthor("bob")

	s := store.NewStore(dataDir)

	saveErr := s.Save(userDir.Snapshot(), docDir.Snapshot())
	if saveErr != nil { t.Fatalf("save failed: %s\n", saveErr.Error()) }

	users, docs, loadErr := s.Load()
	if loadErr != nil { t.Fatalf("load failed: %s\n", loadErr.Error()) }

	if ! reflect.DeepEqual(users, userDir.Snapshot()) { t.Errorf("users actual(%v), expected(%v)\n", users, userDir.Snapshot()) }
	if ! reflect.DeepEqual(docs, docDir.Snapshot()) { t.Errorf("documents actual(%v), expected(%v)\n", docs, docDir.Snapshot()) }

	userDir.Insert("carol", "digest-c")
	s.Save(userDir.Snapshot(), []docdb.DocumentRecord{})

	users, docs, _ = s.Load()
	t.Logf("actual users: %d, docs: %d, expected: 3, 0\n", len(users), len(docs))
	if len(users) != 3 || len(docs) != 0 { t.Errorf("second save should replace contents\n") }
}
