package models

import (
	"time"
)

// Asset mirrors one row of the assets table: the hub representation of one
// spoke-chain token.
type Asset struct {
	ID               int64
	SpokeChainID     uint64
	TokenAddress     string
	HubAssetAddress  string
	Decimals         uint8
	VaultAddress     string
	VaultDecimals    uint8
	PoolTokenAddress string
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
