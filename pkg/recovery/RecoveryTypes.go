package recovery

import "errors"

import "github.com/sirgallo/rdoc/pkg/chataddr"
import "github.com/sirgallo/rdoc/pkg/docdb"
import "github.com/sirgallo/rdoc/pkg/userdb"


// the live tables of one replica
type Tables struct {
	Users *userdb.UserDirectory
	Sessions *userdb.SessionTable
	Documents *docdb.DocumentDirectory
	Chat *chataddr.Table
}

type Manifest struct {
	SourcePort int
	TargetPort int

	Users []userdb.User
	Sessions []userdb.Session
	Documents []docdb.DocumentRecord
	ChatAddresses map[string]uint32

	FileCount int
	TotalBytes int64
}

type File struct {
	Path string
	Content []byte
}

/*
	Backup
		everything a dead replica needs to rejoin: the tables plus the raw bytes of every section file,
		with every path already pointing into the target's data directory
*/

type Backup struct {
	Manifest
	Files []File
}

/*
	Chunk
		unit of the recovery stream, the first chunk carries only the encoded manifest and every following chunk
		carries a piece of one file at the given offset
*/

type Chunk struct {
	Manifest []byte
	Path string
	Offset int64
	Data []byte
}

type Assembler struct {
	manifest *Manifest
	files map[string][]byte
	order []string
}

const NAME = "Recovery"
const DefaultChunkSize = 64 * 1024

var (
	ErrMissingManifest = errors.New("recovery stream did not start with a manifest")
	ErrOutOfOrder = errors.New("recovery chunk out of order")
	ErrIncomplete = errors.New("recovery stream incomplete")
	ErrPathOutsideData = errors.New("recovery path outside data directory")
	ErrInsufficientSpace = errors.New("insufficient disk space for recovery")
)
