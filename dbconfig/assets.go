package dbconfig

import (
	"context"
	"database/sql"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/Crosslane/intent-lib/dbconfig/models"
)

// GetAssets returns all active asset rows from the database.
func (r *DBConfig) GetAssets(ctx context.Context) ([]models.Asset, error) {
	db, err := sql.Open("postgres", r.dbConnStr)
	if err != nil {
		return nil, commonerrors.ErrDatabaseConnect
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
      SELECT
          id,
          spoke_chain_id,
          token_address,
          hub_asset_address,
          decimals,
          vault_address,
          vault_decimals,
          pool_token_address,
          active,
          created_at,
          updated_at
      FROM assets
      WHERE active = $1
      ORDER BY spoke_chain_id ASC, token_address ASC
  `, true)
	if err != nil {
		return nil, commonerrors.ErrDatabaseConnect
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var asset models.Asset
		var poolToken sql.NullString

		err := rows.Scan(
			&asset.ID,
			&asset.SpokeChainID,
			&asset.TokenAddress,
			&asset.HubAssetAddress,
			&asset.Decimals,
			&asset.VaultAddress,
			&asset.VaultDecimals,
			&poolToken,
			&asset.Active,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		)
		if err != nil {
			return nil, commonerrors.ErrDatabaseConnect
		}

		asset.PoolTokenAddress = poolToken.String
		assets = append(assets, asset)
	}

	if err = rows.Err(); err != nil {
		return nil, commonerrors.ErrDatabaseConnect
	}

	return assets, nil
}

// ToAssetMap converts asset rows into the map the asset registry is built
// from.
func ToAssetMap(assets []models.Asset) map[types.AssetKey]types.AssetDescriptor {
	out := make(map[types.AssetKey]types.AssetDescriptor, len(assets))
	for _, asset := range assets {
		out[types.AssetKey{
			SpokeChainID: asset.SpokeChainID,
			TokenAddress: asset.TokenAddress,
		}] = types.AssetDescriptor{
			HubAssetAddress:  asset.HubAssetAddress,
			Decimals:         asset.Decimals,
			VaultAddress:     asset.VaultAddress,
			VaultDecimals:    asset.VaultDecimals,
			PoolTokenAddress: asset.PoolTokenAddress,
		}
	}
	return out
}
