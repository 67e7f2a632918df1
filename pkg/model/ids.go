package model

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const minIDLength = 8

// IDGenerator produces field identifiers.
type IDGenerator func() string

// NewID returns a random base-36 identifier of at least eight characters.
// Values are unique with overwhelming probability within a session; they are
// not meant to be unguessable.
func NewID() string {
	u := uuid.New()
	id := strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 36)
	if len(id) < minIDLength {
		id = strings.Repeat("0", minIDLength-len(id)) + id
	}
	return id
}
