package export

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultFilename is used when the document has no name.
const DefaultFilename = "My_CV.pdf"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	pathSeparator = strings.NewReplacer("/", "_", `\`, "_")
)

// Filename derives the export filename from a full name: "Jane Q. Public" gives
// "Jane_Q._Public_CV.pdf". Whitespace runs and path separators become underscores.
func Filename(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return DefaultFilename
	}
	name = whitespaceRun.ReplaceAllString(name, "_")
	name = pathSeparator.Replace(name)
	return name + "_CV.pdf"
}

// ValidateFilename reports whether name can be used as an artifact name as given: a single
// path element with no separators.
func ValidateFilename(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return nil
}
