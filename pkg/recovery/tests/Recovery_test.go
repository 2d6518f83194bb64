package recoverytests

import "bytes"
import "errors"
import "os"
import "path/filepath"
import "reflect"
import "testing"

import "github.com/sirgallo/rdoc/pkg/chataddr"
import "github.com/sirgallo/rdoc/pkg/docdb"
import "github.com/sirgallo/rdoc/pkg/recovery"
import "github.com/sirgallo/rdoc/pkg/userdb"


func newTables(dataDir string) recovery.Tables {
	return recovery.Tables{
		Users: userdb.NewUserDirectory(),
		Sessions: userdb.NewSessionTable(),
		Documents: docdb.NewDocumentDirectory(dataDir),
		Chat: chataddr.NewTable(),
	}
}

func TestRewritePath(t *testing.T) {
	cases := []struct {
		path string
		sourceDir string
		expected string
	}{
		{ "/srv/rdoc/server_data_1300/doc1/0.section", "/srv/rdoc/server_data_1300", "/srv/rdoc/server_data_1400/doc1/0.section" },
		{ "/srv/data_2024/server_data_1300/doc1/0.section", "/srv/data_2024/server_data_1300", "/srv/data_2024/server_data_1400/doc1/0.section" },
		{ "/srv/server_data_1300/server_data_1300/0.section", "/srv/server_data_1300", "/srv/server_data_1400/server_data_1300/0.section" },
		{ "/elsewhere/server_data_1300/doc1/0.section", "/srv/server_data_1300", "/elsewhere/server_data_1300/doc1/0.section" },
	}

	for _, c := range cases {
		targetDir := recovery.TargetDir(c.sourceDir, 1300, 1400)
		actual := filepath.ToSlash(recovery.RewritePath(filepath.FromSlash(c.path), filepath.FromSlash(c.sourceDir), targetDir))
		t.Logf("actual: %s, expected: %s\n", actual, c.expected)
		if actual != c.expected { t.Errorf("rewrite actual(%s), expected(%s)\n", actual, c.expected) }
	}
}

func TestTargetDir(t *testing.T) {
	cases := []struct {
		sourceDir string
		expected string
	}{
		{ "/srv/data_2024/server_data_1300", "/srv/data_2024/server_data_1400" },
		{ "server_data_1300", "server_data_1400" },
		{ "/srv/rdoc/server_data_1300/", "/srv/rdoc/server_data_1400" },
	}

	for _, c := range cases {
		actual := filepath.ToSlash(recovery.TargetDir(filepath.FromSlash(c.sourceDir), 1300, 1400))
		t.Logf("actual: %s, expected: %s\n", actual, c.expected)
		if actual != c.expected { t.Errorf("target dir actual(%s), expected(%s)\n", actual, c.expected) }
	}
}

func TestSplitAssemble(t *testing.T) {
	backup := &recovery.Backup{
		Manifest: recovery.Manifest{ SourcePort: 1300, TargetPort: 1400, FileCount: 2, TotalBytes: 10 },
		Files: []recovery.File{
			{ Path: "a/0.section", Content: []byte("0123456789") },
			{ Path: "a/1.section", Content: []byte{} },
		},
	}

	chunks, splitErr := recovery.Split(backup, 3)
	if splitErr != nil { t.Fatalf("split failed: %s\n", splitErr.Error()) }

	t.Logf("actual chunks: %d, expected: 6\n", len(chunks))
	if len(chunks) != 6 { t.Errorf("chunk count actual(%d), expected(6)\n", len(chunks)) }

	assembler := recovery.NewAssembler()
	for idx := range chunks {
		addErr := assembler.Add(&chunks[idx])
		if addErr != nil { t.Fatalf("add failed: %s\n", addErr.Error()) }
	}

	assembled, asmErr := assembler.Backup()
	if asmErr != nil { t.Fatalf("assemble failed: %s\n", asmErr.Error()) }

	if ! bytes.Equal(assembled.Files[0].Content, backup.Files[0].Content) { t.Errorf("content actual(%s), expected(%s)\n", assembled.Files[0].Content, backup.Files[0].Content) }
	if len(assembled.Files[1].Content) != 0 { t.Errorf("empty file should stay empty\n") }
}

func TestAssemblerRejectsBadStreams(t *testing.T) {
	noManifest := recovery.NewAssembler()
	addErr := noManifest.Add(&recovery.Chunk{ Path: "x", Data: []byte("x") })
	if ! errors.Is(addErr, recovery.ErrMissingManifest) { t.Errorf("missing manifest actual(%v), expected(%v)\n", addErr, recovery.ErrMissingManifest) }

	backup := &recovery.Backup{
		Manifest: recovery.Manifest{ FileCount: 1, TotalBytes: 6 },
		Files: []recovery.File{ { Path: "a", Content: []byte("abcdef") } },
	}

	chunks, _ := recovery.Split(backup, 2)

	outOfOrder := recovery.NewAssembler()
	outOfOrder.Add(&chunks[0])
	skipErr := outOfOrder.Add(&chunks[2])
	if ! errors.Is(skipErr, recovery.ErrOutOfOrder) { t.Errorf("skipped chunk actual(%v), expected(%v)\n", skipErr, recovery.ErrOutOfOrder) }

	truncated := recovery.NewAssembler()
	truncated.Add(&chunks[0])
	truncated.Add(&chunks[1])
	_, incompleteErr := truncated.Backup()
	if ! errors.Is(incompleteErr, recovery.ErrIncomplete) { t.Errorf("truncated stream actual(%v), expected(%v)\n", incompleteErr, recovery.ErrIncomplete) }
}

func TestRecoveryRoundTrip(t *testing.T) {
	base := t.TempDir()
	sourceDir := filepath.Join(base, "server_data_1300")
	targetDir := filepath.Join(base, "server_data_1400")

	source := newTables(sourceDir)
	source.Users.Insert("alice", "digest-a")
	source.Users.Insert("bob", "digest-b")
	source.Sessions.Login("alice", "tok")

	doc, _ := source.Documents.Create("doc1", "alice", 2)
	doc.AddAuthor("bob")
	doc.Sections[0].Occupy("bob")
	source.Documents.WriteSection(doc.Sections[0], []byte("section zero"))
	source.Documents.WriteSection(doc.Sections[1], bytes.Repeat([]byte("x"), 200000))
	source.Chat.Assign("doc1", chataddr.FirstAddress)

	os.MkdirAll(targetDir, 0755)
	os.WriteFile(filepath.Join(targetDir, "stale.section"), []byte("stale"), 0644)

	backup, buildErr := recovery.BuildBackup(source, 1300, 1400)
	if buildErr != nil { t.Fatalf("build failed: %s\n", buildErr.Error()) }

	chunks, _ := recovery.Split(backup, recovery.DefaultChunkSize)
	assembler := recovery.NewAssembler()
	for idx := range chunks { assembler.Add(&chunks[idx]) }

	shipped, asmErr := assembler.Backup()
	if asmErr != nil { t.Fatalf("assemble failed: %s\n", asmErr.Error()) }

	installErr := recovery.Install(shipped, targetDir)
	if installErr != nil { t.Fatalf("install failed: %s\n", installErr.Error()) }

	target := newTables(targetDir)
	recovery.RestoreTables(target, shipped)

	if ! reflect.DeepEqual(target.Users.Snapshot(), source.Users.Snapshot()) { t.Errorf("users differ after recovery\n") }
	if ! reflect.DeepEqual(target.Sessions.Snapshot(), source.Sessions.Snapshot()) { t.Errorf("sessions differ after recovery\n") }
	if ! reflect.DeepEqual(target.Chat.Snapshot(), source.Chat.Snapshot()) { t.Errorf("chat addresses differ after recovery\n") }

	targetDoc, ok := target.Documents.Get("doc1")
	if ! ok { t.Fatalf("doc1 missing on target\n") }
	if ! reflect.DeepEqual(targetDoc.Authors(), doc.Authors()) { t.Errorf("authors actual(%v), expected(%v)\n", targetDoc.Authors(), doc.Authors()) }

	for idx, section := range targetDoc.Sections {
		expectedPath := docdb.SectionPath(targetDir, "doc1", idx)
		t.Logf("actual path: %s, expected: %s\n", section.Path, expectedPath)
		if filepath.Clean(section.Path) != expectedPath { t.Errorf("path actual(%s), expected(%s)\n", section.Path, expectedPath) }

		sourceContent, _ := source.Documents.ReadSection(doc.Sections[idx])
		targetContent, readErr := target.Documents.ReadSection(section)
		if readErr != nil || ! bytes.Equal(sourceContent, targetContent) { t.Errorf("section %d content differs after recovery\n", idx) }
	}

	occupant, _ := targetDoc.Sections[0].Occupant()
	if occupant != "bob" { t.Errorf("occupant actual(%s), expected(bob)\n", occupant) }

	_, staleErr := os.Stat(filepath.Join(targetDir, "stale.section"))
	if ! os.IsNotExist(staleErr) { t.Errorf("stale data should be wiped\n") }
}

func TestInstallRejectsForeignPaths(t *testing.T) {
	base := t.TempDir()
	targetDir := filepath.Join(base, "server_data_1400")

	os.MkdirAll(targetDir, 0755)
	os.WriteFile(filepath.Join(targetDir, "keep.section"), []byte("keep"), 0644)

	backup := &recovery.Backup{
		Manifest: recovery.Manifest{ FileCount: 1, TotalBytes: 1 },
		Files: []recovery.File{ { Path: filepath.Join(base, "server_data_1300", "doc", "0.section"), Content: []byte("x") } },
	}

	installErr := recovery.Install(backup, targetDir)
	if ! errors.Is(installErr, recovery.ErrPathOutsideData) { t.Errorf("foreign path actual(%v), expected(%v)\n", installErr, recovery.ErrPathOutsideData) }

	_, keepErr := os.Stat(filepath.Join(targetDir, "keep.section"))
	if keepErr != nil { t.Errorf("rejected install should not wipe existing data\n") }
}

func TestRecoveryUnderNumberedBase(t *testing.T) {
	base := filepath.Join(t.TempDir(), "data_2024")
	sourceDir := filepath.Join(base, "server_data_1300")
	targetDir := filepath.Join(base, "server_data_1400")

	source := newTables(sourceDir)
	source.Users.Insert("alice", "digest-a")

	doc, _ := source.Documents.Create("doc1", "alice", 1)
	source.Documents.WriteSection(doc.Sections[0], []byte("numbered base"))

	backup, buildErr := recovery.BuildBackup(source, 1300, 1400)
	if buildErr != nil { t.Fatalf("build failed: %s\n", buildErr.Error()) }

	expectedPath := docdb.SectionPath(targetDir, "doc1", 0)
	t.Logf("actual path: %s, expected: %s\n", backup.Files[0].Path, expectedPath)
	if backup.Files[0].Path != expectedPath { t.Errorf("shipped path actual(%s), expected(%s)\n", backup.Files[0].Path, expectedPath) }

	installErr := recovery.Install(backup, targetDir)
	if installErr != nil { t.Fatalf("install under numbered base actual(%v), expected(nil)\n", installErr) }

	content, readErr := os.ReadFile(expectedPath)
	if readErr != nil || string(content) != "numbered base" { t.Errorf("installed content actual(%s), expected(numbered base)\n", content) }
}
