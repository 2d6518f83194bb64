package recovery

import "fmt"

import "github.com/sirgallo/rdoc/pkg/utils"


//=========================================== Recovery Stream


/*
	Split:
		1.) the first chunk is the json encoded manifest
		2.) each file is cut into pieces of at most chunkSize bytes, an empty file still produces one chunk so the
			receiver creates it
*/

func Split(backup *Backup, chunkSize int) ([]Chunk, error) {
	if chunkSize <= 0 { chunkSize = DefaultChunkSize }

	manifest, encErr := utils.EncodeStructToBytes[Manifest](backup.Manifest)
	if encErr != nil { return nil, encErr }

	chunks := []Chunk{ { Manifest: manifest } }

	for _, file := range backup.Files {
		if len(file.Content) == 0 {
			chunks = append(chunks, Chunk{ Path: file.Path, Offset: 0, Data: []byte{} })
			continue
		}

		for offset := 0; offset < len(file.Content); offset += chunkSize {
			end := offset + chunkSize
			if end > len(file.Content) { end = len(file.Content) }

			chunks = append(chunks, Chunk{ Path: file.Path, Offset: int64(offset), Data: file.Content[offset:end] })
		}
	}

	return chunks, nil
}

func NewAssembler() *Assembler {
	return &Assembler{
		files: make(map[string][]byte),
		order: []string{},
	}
}

/*
	Add:
		1.) the first chunk must carry the manifest
		2.) file chunks must arrive in offset order per path
*/

func (a *Assembler) Add(chunk *Chunk) error {
	if a.manifest == nil {
		if len(chunk.Manifest) == 0 { return ErrMissingManifest }

		manifest, decErr := utils.DecodeBytesToStruct[Manifest](chunk.Manifest)
		if decErr != nil { return decErr }

		a.manifest = manifest
		return nil
	}

	current, seen := a.files[chunk.Path]
	if ! seen { a.order = append(a.order, chunk.Path) }
	if int64(len(current)) != chunk.Offset {
		return fmt.Errorf("%w: %s at offset %d, have %d bytes", ErrOutOfOrder, chunk.Path, chunk.Offset, len(current))
	}

	a.files[chunk.Path] = append(current, chunk.Data...)
	return nil
}

/*
	Backup:
		the stream is complete once the manifest and exactly the announced number of files and bytes arrived
*/

func (a *Assembler) Backup() (*Backup, error) {
	if a.manifest == nil { return nil, ErrMissingManifest }

	files := make([]File, 0, len(a.order))
	totalBytes := int64(0)

	for _, path := range a.order {
		content := a.files[path]
		files = append(files, File{ Path: path, Content: content })
		totalBytes += int64(len(content))
	}

	if len(files) != a.manifest.FileCount || totalBytes != a.manifest.TotalBytes {
		return nil, fmt.Errorf("%w: %d/%d files, %d/%d bytes", ErrIncomplete, len(files), a.manifest.FileCount, totalBytes, a.manifest.TotalBytes)
	}

	return &Backup{ Manifest: *a.manifest, Files: files }, nil
}
