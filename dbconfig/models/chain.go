package models

import (
	"time"
)

// Chain mirrors one row of the chains table.
type Chain struct {
	ID            int64
	Name          string
	Family        string
	ChainID       uint64
	RelayChainID  uint64
	RpcUrl        string
	TxType        uint64
	WaitNBlocks   uint64
	NativeToken   string
	AssetManager  string
	Connection    string
	WalletFactory string
	Settlement    string
	Multicall     string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
