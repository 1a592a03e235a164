package intent

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

// NewIntentID draws a fresh 256-bit intent identifier from the operating
// system's CSPRNG. Identifiers are random, not content-derived: two intents
// with identical economic parameters never share an id. Collisions are
// cryptographically negligible and not otherwise enforced client-side; the
// hub contract rejects re-submission of an existing id.
func NewIntentID() (*big.Int, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "failed to read random intent id")
	}
	return new(big.Int).SetBytes(buf), nil
}
