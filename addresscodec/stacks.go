package addresscodec

import (
	"bytes"
	"crypto/sha256"
	"math/big"
	"strings"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/pkg/errors"
)

// c32Alphabet is the Crockford-style base32 alphabet used by Stacks
// c32check addresses. I, L, O and U are excluded.
const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// encodeStacks decodes a Stacks c32check address (S...) into the version
// byte plus the 20-byte hash.
func encodeStacks(address string) ([]byte, error) {
	if len(address) < 3 || address[0] != 'S' {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "missing S prefix: %s", address)
	}
	version := strings.IndexByte(c32Alphabet, address[1])
	if version < 0 {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "bad version char %q", address[1])
	}
	decoded, err := c32Decode(address[2:], 24)
	if err != nil {
		return nil, err
	}
	if len(decoded) != 24 {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "c32 payload length %d", len(decoded))
	}
	hash := decoded[:20]
	checksum := decoded[20:]
	if !bytes.Equal(checksum, c32Checksum(byte(version), hash)) {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, "c32check checksum mismatch")
	}
	out := make([]byte, 0, 21)
	out = append(out, byte(version))
	return append(out, hash...), nil
}

// decodeStacks re-encodes version plus 20-byte hash as a c32check address.
func decodeStacks(raw []byte) (string, error) {
	if len(raw) != 21 {
		return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "expected 21 bytes, got %d", len(raw))
	}
	version := raw[0]
	if int(version) >= len(c32Alphabet) {
		return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "version %d out of range", version)
	}
	hash := raw[1:]
	payload := make([]byte, 0, 24)
	payload = append(payload, hash...)
	payload = append(payload, c32Checksum(version, hash)...)
	return "S" + string(c32Alphabet[version]) + c32Encode(payload), nil
}

// c32Checksum is the first four bytes of sha256(sha256(version ‖ hash)).
func c32Checksum(version byte, hash []byte) []byte {
	buf := make([]byte, 0, len(hash)+1)
	buf = append(buf, version)
	buf = append(buf, hash...)
	first := sha256.Sum256(buf)
	second := sha256.Sum256(first[:])
	return second[:4]
}

// c32Encode encodes bytes in the c32 alphabet, preserving leading zero
// bytes as leading '0' characters.
func c32Encode(data []byte) string {
	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}

	num := new(big.Int).SetBytes(data)
	base := big.NewInt(32)
	mod := new(big.Int)
	var out []byte
	for num.Sign() > 0 {
		num.DivMod(num, base, mod)
		out = append(out, c32Alphabet[mod.Int64()])
	}
	for i := 0; i < zeros; i++ {
		out = append(out, c32Alphabet[0])
	}
	// Digits were produced least-significant first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// c32Decode decodes a c32 string into size bytes, left-padding to restore
// leading zeros.
func c32Decode(s string, size int) ([]byte, error) {
	num := new(big.Int)
	base := big.NewInt(32)
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(c32Alphabet, s[i])
		if idx < 0 {
			return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "bad c32 char %q", s[i])
		}
		num.Mul(num, base)
		num.Add(num, big.NewInt(int64(idx)))
	}

	raw := num.Bytes()
	if len(raw) > size {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, "c32 payload overflow")
	}
	out := make([]byte, size)
	copy(out[size-len(raw):], raw)
	return out, nil
}
