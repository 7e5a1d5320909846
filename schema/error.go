package schema

import "fmt"

// Error is a single schema-validation finding, tagged with the
// slash-joined path of the element or property it concerns.
type Error struct {
	Path    string
	Message string
}

func (e Error) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}

	return parent + "/" + child
}
