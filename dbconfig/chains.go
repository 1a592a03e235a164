package dbconfig

import (
	"context"
	"database/sql"
	"strings"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/Crosslane/intent-lib/dbconfig/models"
)

// GetChains returns all chains from the database, optionally filtering by
// active status.
func (r *DBConfig) GetChains(ctx context.Context, activeOnly bool) ([]models.Chain, error) {
	db, err := sql.Open("postgres", r.dbConnStr)
	if err != nil {
		return nil, commonerrors.ErrDatabaseConnect
	}
	defer db.Close()

	query := `
      SELECT
          id,
          name,
          chain_family,
          chain_id,
          relay_chain_id,
          rpc_url,
          tx_type,
          wait_n_blocks,
          native_token,
          asset_manager_address,
          connection_address,
          wallet_factory_address,
          settlement_address,
          multicall_address,
          active,
          created_at,
          updated_at
      FROM chains
  `

	var args []interface{}
	if activeOnly {
		query += " WHERE active = $1"
		args = append(args, true)
	}

	query += " ORDER BY relay_chain_id ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, commonerrors.ErrDatabaseConnect
	}
	defer rows.Close()

	var chains []models.Chain
	for rows.Next() {
		chain, err := scanChain(rows)
		if err != nil {
			return nil, err
		}
		chains = append(chains, *chain)
	}

	if err = rows.Err(); err != nil {
		return nil, commonerrors.ErrDatabaseConnect
	}

	return chains, nil
}

// GetChainByRelayID returns the chain row with the given relay chain id.
func (r *DBConfig) GetChainByRelayID(ctx context.Context, relayChainID uint64) (*models.Chain, error) {
	if relayChainID == 0 {
		return nil, commonerrors.ErrChainNotFound
	}

	db, err := sql.Open("postgres", r.dbConnStr)
	if err != nil {
		return nil, commonerrors.ErrDatabaseConnect
	}
	defer db.Close()

	row := db.QueryRowContext(ctx, `
       SELECT
           id,
           name,
           chain_family,
           chain_id,
           relay_chain_id,
           rpc_url,
           tx_type,
           wait_n_blocks,
           native_token,
           asset_manager_address,
           connection_address,
           wallet_factory_address,
           settlement_address,
           multicall_address,
           active,
           created_at,
           updated_at
       FROM chains
       WHERE relay_chain_id = $1
    `, relayChainID)

	chain, err := scanChain(row)
	if err != nil {
		return nil, err
	}

	return chain, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanChain(row scanner) (*models.Chain, error) {
	var chain models.Chain
	var family sql.NullString
	var nativeToken sql.NullString
	var assetManager sql.NullString
	var connection sql.NullString
	var walletFactory sql.NullString
	var settlement sql.NullString
	var multicall sql.NullString

	err := row.Scan(
		&chain.ID,
		&chain.Name,
		&family,
		&chain.ChainID,
		&chain.RelayChainID,
		&chain.RpcUrl,
		&chain.TxType,
		&chain.WaitNBlocks,
		&nativeToken,
		&assetManager,
		&connection,
		&walletFactory,
		&settlement,
		&multicall,
		&chain.Active,
		&chain.CreatedAt,
		&chain.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, commonerrors.ErrChainNotFound
	}
	if err != nil {
		return nil, commonerrors.ErrDatabaseConnect
	}

	if family.Valid {
		chain.Family = strings.ToUpper(family.String)
	}
	chain.NativeToken = nativeToken.String
	chain.AssetManager = assetManager.String
	chain.Connection = connection.String
	chain.WalletFactory = walletFactory.String
	chain.Settlement = settlement.String
	chain.Multicall = multicall.String

	return &chain, nil
}

// ToChainConfig converts a chain row into a provider configuration. The
// private key never comes from the database; callers inject it from the
// environment.
func ToChainConfig(chain *models.Chain, privateKey string) *types.ChainConfig {
	return &types.ChainConfig{
		Name:         chain.Name,
		Family:       types.ParseChainFamily(chain.Family),
		ChainID:      chain.ChainID,
		RelayChainID: chain.RelayChainID,
		RpcUrl:       chain.RpcUrl,
		TxType:       chain.TxType,
		WaitNBlocks:  chain.WaitNBlocks,
		PrivateKey:   privateKey,
		NativeToken:  chain.NativeToken,
		Contracts: types.ChainContracts{
			AssetManager:  chain.AssetManager,
			Connection:    chain.Connection,
			WalletFactory: chain.WalletFactory,
			Settlement:    chain.Settlement,
			Multicall:     chain.Multicall,
		},
	}
}
