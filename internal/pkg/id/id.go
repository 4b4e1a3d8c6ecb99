package id

import (
	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs sort by creation time, which keeps
// scans of the catalog and booking tables roughly chronological.
func New() string {
	return ulid.Make().String()
}
