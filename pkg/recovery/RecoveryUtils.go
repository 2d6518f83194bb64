package recovery

import "path/filepath"
import "strconv"
import "strings"


/*
	Rewrite Path:
		<sourceDir>/<rest> --> <targetDir>/<rest>, a path outside the source directory is returned unchanged
*/

func RewritePath(path string, sourceDir string, targetDir string) string {
	if ! WithinDir(sourceDir, path) { return path }

	rel, relErr := filepath.Rel(filepath.Clean(sourceDir), filepath.Clean(path))
	if relErr != nil { return path }

	return filepath.Join(targetDir, rel)
}

/*
	Target Dir:
		the target's data directory sits beside the source's, with the trailing source port swapped for the target port
			<base>/server_data_1300 --> <base>/server_data_1400
*/

func TargetDir(sourceDir string, sourcePort int, targetPort int) string {
	parent, name := filepath.Split(filepath.Clean(sourceDir))
	name = strings.TrimSuffix(name, strconv.Itoa(sourcePort))

	return filepath.Join(parent, name + strconv.Itoa(targetPort))
}

func WithinDir(dir string, path string) bool {
	rel, relErr := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if relErr != nil { return false }

	return rel != "." && rel != ".." && ! strings.HasPrefix(rel, ".." + string(filepath.Separator))
}
