package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers. Row keys are regenerated on every
// mirror reload, so they only need to be unique within one snapshot.
type Generator interface {
	New() string
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
