package readstore

import (
	"context"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/infra/query"
)

type SettingsReadQueries interface {
	ListSettings(ctx context.Context, db query.DBTX, keys []string) ([]query.BotSettings, error)
}

type SettingsReadStore struct {
	queries SettingsReadQueries
}

func NewSettingsReadStore(queries SettingsReadQueries) *SettingsReadStore {
	return &SettingsReadStore{
		queries: queries,
	}
}

// GetMany returns the stored values for keys; missing keys are absent from the map.
func (r *SettingsReadStore) GetMany(ctx context.Context, tx db.DBTX, keys ...string) (map[string]string, error) {
	rows, err := r.queries.ListSettings(ctx, tx, keys)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read settings", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}
