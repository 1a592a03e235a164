package signer

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"math/big"
)

// Signer signs data and transactions for one EVM wallet.
type Signer interface {
	// Sign signs the given data and returns the signature.
	Sign(data []byte) ([]byte, error)

	// SignTx signs the given transaction with the specified chain ID and
	// returns the signed transaction.
	SignTx(transaction *ethtypes.Transaction, chainID *big.Int) (*ethtypes.Transaction, error)

	// Address returns the signer's address.
	Address() common.Address
}

// signer is a concrete implementation of the Signer interface.
type signer struct {
	privateKey *ecdsa.PrivateKey
	publicKey  *ecdsa.PublicKey
	address    common.Address
}

// NewSigner creates a new signer instance with the given private key.
//
// Parameters:
// - privateKey: the private key to be used for signing.
//
// Returns:
// - Signer: a new signer instance.
// - error: an error if the private key is not valid.
func NewSigner(privateKey *ecdsa.PrivateKey) (Signer, error) {
	pubKeyECDSA, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("invalid public key type")
	}

	return &signer{
		privateKey: privateKey,
		publicKey:  pubKeyECDSA,
		address:    crypto.PubkeyToAddress(*pubKeyECDSA),
	}, nil
}

// Sign signs the given data with the signer's private key.
func (s *signer) Sign(data []byte) ([]byte, error) {
	hash := crypto.Keccak256(data)
	signature, err := crypto.Sign(hash, s.privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign data")
	}
	return signature, nil
}

// SignTx signs the given transaction for the specified chain.
func (s *signer) SignTx(transaction *ethtypes.Transaction, chainID *big.Int) (*ethtypes.Transaction, error) {
	signedTx, err := ethtypes.SignTx(transaction, ethtypes.LatestSignerForChainID(chainID), s.privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}
	return signedTx, nil
}

// Address returns the signer's address.
func (s *signer) Address() common.Address {
	return s.address
}
