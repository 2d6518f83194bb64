package recovery

import "fmt"
import "os"

import "github.com/sirgallo/rdoc/pkg/docdb"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/stats"


//=========================================== Recovery


var Log = clog.NewCustomLog(NAME)


/*
	Build Backup:
		1.) snapshot every table of the helper replica
		2.) read the raw bytes of every section file
		3.) rewrite each section path, in both the document records and the shipped files, from the helper's data
			directory to the target's
*/

func BuildBackup(tables Tables, sourcePort int, targetPort int) (*Backup, error) {
	documents := tables.Documents.Snapshot()
	sourceDir := tables.Documents.DataDir()
	targetDir := TargetDir(sourceDir, sourcePort, targetPort)

	files := []File{}
	totalBytes := int64(0)

	for docIdx := range documents {
		for secIdx := range documents[docIdx].Sections {
			section := &documents[docIdx].Sections[secIdx]

			content, readErr := os.ReadFile(section.Path)
			if readErr != nil { return nil, fmt.Errorf("reading section %s: %w", section.Path, readErr) }

			section.Path = RewritePath(section.Path, sourceDir, targetDir)
			files = append(files, File{ Path: section.Path, Content: content })
			totalBytes += int64(len(content))
		}
	}

	Log.Info("backup built for target", targetPort, "with", len(files), "files,", totalBytes, "bytes")

	return &Backup{
		Manifest: Manifest{
			SourcePort: sourcePort,
			TargetPort: targetPort,
			Users: tables.Users.Snapshot(),
			Sessions: tables.Sessions.Snapshot(),
			Documents: documents,
			ChatAddresses: tables.Chat.Snapshot(),
			FileCount: len(files),
			TotalBytes: totalBytes,
		},
		Files: files,
	}, nil
}

/*
	Install:
		1.) every shipped path must resolve inside the target data directory
		2.) check the filesystem can hold the shipped bytes
		3.) wipe the stale data directory and recreate it
		4.) write every file to its path

	any failure returns before the caller swaps its in memory tables
*/

func Install(backup *Backup, dataDir string) error {
	for _, file := range backup.Files {
		if ! WithinDir(dataDir, file.Path) { return fmt.Errorf("%w: %s", ErrPathOutsideData, file.Path) }
	}

	for _, doc := range backup.Documents {
		for _, section := range doc.Sections {
			if ! WithinDir(dataDir, section.Path) { return fmt.Errorf("%w: %s", ErrPathOutsideData, section.Path) }
		}
	}

	ok, current, statsErr := stats.HasCapacityFor(dataDir, backup.TotalBytes)
	if statsErr != nil { return statsErr }
	if ! ok { return fmt.Errorf("%w: need %d bytes, %s", ErrInsufficientSpace, backup.TotalBytes, current.String()) }

	removeErr := os.RemoveAll(dataDir)
	if removeErr != nil { return removeErr }

	mkdirErr := os.MkdirAll(dataDir, 0755)
	if mkdirErr != nil { return mkdirErr }

	for _, file := range backup.Files {
		writeErr := docdb.WriteSectionFile(file.Path, file.Content)
		if writeErr != nil {
			Log.Error("error writing recovered file", file.Path, ":", writeErr.Error())
			return writeErr
		}
	}

	Log.Info("installed", len(backup.Files), "files into", dataDir)
	return nil
}

/*
	Restore Tables:
		replace every table wholesale, only called after Install succeeded
*/

func RestoreTables(tables Tables, backup *Backup) {
	tables.Users.Restore(backup.Users)
	tables.Sessions.Restore(backup.Sessions)
	tables.Documents.Restore(backup.Documents)
	tables.Chat.Restore(backup.ChatAddresses)
}
