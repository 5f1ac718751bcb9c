package model

import "github.com/oklog/ulid/v2"

// NewID returns a ULID string. ULIDs sort lexicographically by creation time,
// so store insertion order and chronological order coincide.
func NewID() string {
	return ulid.Make().String()
}
