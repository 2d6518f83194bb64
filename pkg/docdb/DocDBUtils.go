package docdb

import "fmt"
import "os"
import "path/filepath"
import "strconv"
import "strings"


func SectionPath(dataDir string, docName string, index int) string {
	return filepath.Join(dataDir, docName, strconv.Itoa(index) + SectionExtension)
}

func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." { return fmt.Errorf("%w: %q", ErrInvalidName, name) }
	if strings.ContainsAny(name, "/\\") { return fmt.Errorf("%w: %q", ErrInvalidName, name) }

	return nil
}

func WriteSectionFile(path string, content []byte) error {
	dir := filepath.Dir(path)

	mkdirErr := os.MkdirAll(dir, 0755)
	if mkdirErr != nil { return mkdirErr }

	tmp, tmpErr := os.CreateTemp(dir, ".section-*")
	if tmpErr != nil { return tmpErr }

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()

	if writeErr != nil {
		os.Remove(tmp.Name())
		return writeErr
	}

	if closeErr != nil {
		os.Remove(tmp.Name())
		return closeErr
	}

	return os.Rename(tmp.Name(), path)
}
