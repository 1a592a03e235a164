// Package addresscodec converts chain-native address strings to and from
// the canonical byte representation used in hub-chain messages.
//
// The canonical form is per chain family:
//   - EVM, SONIC: the 20 address bytes.
//   - SUI: the 32 address bytes.
//   - SOLANA: the 32 public key bytes.
//   - BITCOIN: version byte plus hash payload for base58check addresses;
//     a witness marker byte plus witness program for segwit addresses.
//   - STELLAR: the 32 ed25519 public key bytes (StrKey payload).
//   - INJECTIVE: the 20 account bytes (bech32 payload).
//   - ICON: a prefix byte (0x00 for hx, 0x01 for cx) plus the 20 address bytes.
//   - STACKS: the version byte plus the 20 hash bytes (c32check payload).
//
// Decode(Encode(address)) returns the original address for every family.
package addresscodec

import (
	"encoding/hex"
	"strings"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"
	ethcommon "github.com/ethereum/go-ethereum/common"
	mrbase58 "github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// iconEOAPrefix marks an Icon externally owned account (hx...).
	iconEOAPrefix = 0x00
	// iconContractPrefix marks an Icon contract account (cx...).
	iconContractPrefix = 0x01
	// btcWitnessMarker tags canonical bytes of a bech32 Bitcoin address;
	// the low bits carry the witness version.
	btcWitnessMarker = 0xc0
	// injectiveHRP is the bech32 human readable part of Injective accounts.
	injectiveHRP = "inj"
)

// Encode converts a chain-native address string into its canonical byte
// representation for the given chain family.
//
// Parameters:
// - family: the chain family the address belongs to.
// - address: the address in chain-native string form.
//
// Returns:
// - []byte: the canonical representation.
// - error: ErrInvalidAddress if the address is malformed for the family.
func Encode(family types.ChainFamily, address string) ([]byte, error) {
	switch family {
	case types.EVM, types.SONIC:
		return encodeEvm(address)
	case types.SUI:
		return encodeSui(address)
	case types.SOLANA:
		return encodeSolana(address)
	case types.BITCOIN:
		return encodeBitcoin(address)
	case types.STELLAR:
		return encodeStellar(address)
	case types.INJECTIVE:
		return encodeInjective(address)
	case types.ICON:
		return encodeIcon(address)
	case types.STACKS:
		return encodeStacks(address)
	default:
		return nil, errors.Wrapf(commonerrors.ErrInvalidChainFamily, "family %s", family)
	}
}

// Decode converts canonical bytes back into the chain-native string form.
//
// Parameters:
// - family: the chain family the bytes were encoded for.
// - raw: the canonical representation.
//
// Returns:
// - string: the chain-native address.
// - error: ErrInvalidAddress if the bytes are malformed for the family.
func Decode(family types.ChainFamily, raw []byte) (string, error) {
	switch family {
	case types.EVM, types.SONIC:
		return decodeEvm(raw)
	case types.SUI:
		return decodeSui(raw)
	case types.SOLANA:
		return decodeSolana(raw)
	case types.BITCOIN:
		return decodeBitcoin(raw)
	case types.STELLAR:
		return decodeStellar(raw)
	case types.INJECTIVE:
		return decodeInjective(raw)
	case types.ICON:
		return decodeIcon(raw)
	case types.STACKS:
		return decodeStacks(raw)
	default:
		return "", errors.Wrapf(commonerrors.ErrInvalidChainFamily, "family %s", family)
	}
}

func encodeEvm(address string) ([]byte, error) {
	if !ethcommon.IsHexAddress(address) {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "not a hex address: %s", address)
	}
	addr := ethcommon.HexToAddress(address)
	return addr.Bytes(), nil
}

func decodeEvm(raw []byte) (string, error) {
	if len(raw) != ethcommon.AddressLength {
		return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "expected %d bytes, got %d", ethcommon.AddressLength, len(raw))
	}
	return ethcommon.BytesToAddress(raw).Hex(), nil
}

func encodeSui(address string) ([]byte, error) {
	hexPart := strings.TrimPrefix(address, "0x")
	raw, err := hex.DecodeString(hexPart)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
	}
	if len(raw) != 32 {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "expected 32 bytes, got %d", len(raw))
	}
	return raw, nil
}

func decodeSui(raw []byte) (string, error) {
	if len(raw) != 32 {
		return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "expected 32 bytes, got %d", len(raw))
	}
	return "0x" + hex.EncodeToString(raw), nil
}

func encodeSolana(address string) ([]byte, error) {
	raw, err := mrbase58.Decode(address)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
	}
	if len(raw) != 32 {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "expected 32 bytes, got %d", len(raw))
	}
	return raw, nil
}

func decodeSolana(raw []byte) (string, error) {
	if len(raw) != 32 {
		return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "expected 32 bytes, got %d", len(raw))
	}
	return mrbase58.Encode(raw), nil
}

// encodeBitcoin handles base58check (P2PKH, P2SH) and mainnet segwit
// addresses: bech32 for witness v0 (P2WPKH, P2WSH), bech32m for witness v1
// and later (P2TR), per BIP-350.
func encodeBitcoin(address string) ([]byte, error) {
	lowered := strings.ToLower(address)
	if strings.HasPrefix(lowered, "bc1") {
		hrp, data, err := bech32.Decode(lowered)
		if err != nil {
			hrp, data, err = bech32mDecode(lowered)
			if err != nil {
				return nil, err
			}
			if len(data) < 1 || data[0] == 0 {
				return nil, errors.Wrap(commonerrors.ErrInvalidAddress, "witness v0 requires the bech32 checksum")
			}
		} else if len(data) < 1 || data[0] != 0 {
			return nil, errors.Wrap(commonerrors.ErrInvalidAddress, "witness v1+ requires the bech32m checksum")
		}
		if hrp != "bc" {
			return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "unexpected hrp %s", hrp)
		}
		witVer := data[0]
		program, err := bech32.ConvertBits(data[1:], 5, 8, false)
		if err != nil {
			return nil, errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
		}
		out := make([]byte, 0, len(program)+1)
		out = append(out, btcWitnessMarker|witVer)
		return append(out, program...), nil
	}

	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
	}
	out := make([]byte, 0, len(payload)+1)
	out = append(out, version)
	return append(out, payload...), nil
}

func decodeBitcoin(raw []byte) (string, error) {
	if len(raw) < 2 {
		return "", errors.Wrap(commonerrors.ErrInvalidAddress, "truncated bitcoin address bytes")
	}
	if raw[0]&btcWitnessMarker == btcWitnessMarker {
		witVer := raw[0] &^ btcWitnessMarker
		converted, err := bech32.ConvertBits(raw[1:], 8, 5, true)
		if err != nil {
			return "", errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
		}
		data := make([]byte, 0, len(converted)+1)
		data = append(data, witVer)
		data = append(data, converted...)
		if witVer == 0 {
			encoded, err := bech32.Encode("bc", data)
			if err != nil {
				return "", errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
			}
			return encoded, nil
		}
		return bech32mEncode("bc", data)
	}
	return base58.CheckEncode(raw[1:], raw[0]), nil
}

func encodeInjective(address string) ([]byte, error) {
	hrp, data, err := bech32.Decode(address)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
	}
	if hrp != injectiveHRP {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "unexpected hrp %s", hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
	}
	if len(raw) != 20 {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "expected 20 bytes, got %d", len(raw))
	}
	return raw, nil
}

func decodeInjective(raw []byte) (string, error) {
	if len(raw) != 20 {
		return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "expected 20 bytes, got %d", len(raw))
	}
	converted, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
	}
	encoded, err := bech32.Encode(injectiveHRP, converted)
	if err != nil {
		return "", errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
	}
	return encoded, nil
}

func encodeIcon(address string) ([]byte, error) {
	var prefix byte
	switch {
	case strings.HasPrefix(address, "hx"):
		prefix = iconEOAPrefix
	case strings.HasPrefix(address, "cx"):
		prefix = iconContractPrefix
	default:
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "missing hx/cx prefix: %s", address)
	}
	raw, err := hex.DecodeString(address[2:])
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
	}
	if len(raw) != 20 {
		return nil, errors.Wrapf(commonerrors.ErrInvalidAddress, "expected 20 bytes, got %d", len(raw))
	}
	out := make([]byte, 0, 21)
	out = append(out, prefix)
	return append(out, raw...), nil
}

func decodeIcon(raw []byte) (string, error) {
	if len(raw) != 21 {
		return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "expected 21 bytes, got %d", len(raw))
	}
	var prefix string
	switch raw[0] {
	case iconEOAPrefix:
		prefix = "hx"
	case iconContractPrefix:
		prefix = "cx"
	default:
		return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "unknown icon prefix byte %#x", raw[0])
	}
	return prefix + hex.EncodeToString(raw[1:]), nil
}
