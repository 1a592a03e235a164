package addresscodec

import (
	"encoding/base32"
	"encoding/binary"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/pkg/errors"
)

// strkeyVersionAccount is the StrKey version byte for ed25519 account
// public keys ('G' prefix after base32 encoding).
const strkeyVersionAccount = 6 << 3

var strkeyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// encodeStellar decodes a Stellar StrKey account address (G...) into its
// 32-byte ed25519 public key.
func encodeStellar(address string) ([]byte, error) {
	raw, err := strkeyEncoding.DecodeString(address)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
	}
	if len(raw) != 1+32+2 {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "strkey length %d", len(raw))
	}
	if raw[0] != strkeyVersionAccount {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "strkey version byte %#x", raw[0])
	}
	payload := raw[:33]
	want := binary.LittleEndian.Uint16(raw[33:])
	if crc16Checksum(payload) != want {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, "strkey checksum mismatch")
	}
	out := make([]byte, 32)
	copy(out, raw[1:33])
	return out, nil
}

// decodeStellar re-encodes a 32-byte ed25519 public key as a StrKey
// account address.
func decodeStellar(raw []byte) (string, error) {
	if len(raw) != 32 {
		return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "expected 32 bytes, got %d", len(raw))
	}
	payload := make([]byte, 0, 35)
	payload = append(payload, strkeyVersionAccount)
	payload = append(payload, raw...)
	checksum := make([]byte, 2)
	binary.LittleEndian.PutUint16(checksum, crc16Checksum(payload))
	payload = append(payload, checksum...)
	return strkeyEncoding.EncodeToString(payload), nil
}

// crc16Checksum computes the CRC16-XMODEM checksum (poly 0x1021, init 0)
// used by StrKey.
func crc16Checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
