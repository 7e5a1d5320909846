package model

import (
	"time"

	"go.rexsapi.dev/rexsapi/db"
)

// Info is the model header: the authoring application and the database
// (version, language) to validate against.
type Info struct {
	ApplicationID      string
	ApplicationVersion string
	Date               time.Time
	Version            db.Version
	Language           string // empty means "use the registry default"
}
