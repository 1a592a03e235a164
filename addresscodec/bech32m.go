package addresscodec

import (
	"strings"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/pkg/errors"
)

// The btcsuite bech32 package implements only the original BIP-173 checksum.
// BIP-350 changed the final checksum constant for witness versions above
// zero (taproot and later), so those addresses need their own encoder.
const (
	bech32mConst  = 0x2bc830a3
	bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
)

func bech32Polymod(values []byte) uint32 {
	gen := []uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		b := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

func bech32HrpExpand(hrp string) []byte {
	out := make([]byte, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		out = append(out, hrp[i]>>5)
	}
	out = append(out, 0)
	for i := 0; i < len(hrp); i++ {
		out = append(out, hrp[i]&31)
	}
	return out
}

// bech32mEncode encodes 5-bit groups with the BIP-350 checksum.
func bech32mEncode(hrp string, data []byte) (string, error) {
	values := append(bech32HrpExpand(hrp), data...)
	pm := bech32Polymod(append(values, 0, 0, 0, 0, 0, 0)) ^ bech32mConst

	var sb strings.Builder
	sb.WriteString(hrp)
	sb.WriteByte('1')
	for _, d := range data {
		if d >= 32 {
			return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "data value %d out of range", d)
		}
		sb.WriteByte(bech32Charset[d])
	}
	for i := 0; i < 6; i++ {
		sb.WriteByte(bech32Charset[(pm>>uint(5*(5-i)))&31])
	}
	return sb.String(), nil
}

// bech32mDecode decodes a lowercase bech32m string into its human readable
// part and 5-bit groups, checksum stripped.
func bech32mDecode(address string) (string, []byte, error) {
	sep := strings.LastIndexByte(address, '1')
	if sep < 1 || sep+7 > len(address) || len(address) > 90 {
		return "", nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "malformed bech32m string %q", address)
	}
	hrp := address[:sep]

	data := make([]byte, 0, len(address)-sep-1)
	for i := sep + 1; i < len(address); i++ {
		idx := strings.IndexByte(bech32Charset, address[i])
		if idx < 0 {
			return "", nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "invalid bech32m character %q", address[i])
		}
		data = append(data, byte(idx))
	}

	if bech32Polymod(append(bech32HrpExpand(hrp), data...)) != bech32mConst {
		return "", nil, errors.Wrap(commonerrors.ErrInvalidAddress, "bech32m checksum mismatch")
	}
	return hrp, data[:len(data)-6], nil
}
