package query

import (
	"context"
)

const listSettings = `SELECT key, value FROM bot_settings WHERE key = ANY($1::text[])`

func (q *Queries) ListSettings(ctx context.Context, db DBTX, keys []string) ([]BotSettings, error) {
	rows, err := db.Query(ctx, listSettings, keys)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BotSettings
	for rows.Next() {
		var i BotSettings
		if err := rows.Scan(&i.Key, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const upsertSetting = `INSERT INTO bot_settings (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

func (q *Queries) UpsertSetting(ctx context.Context, db DBTX, key, value string) error {
	_, err := db.Exec(ctx, upsertSetting, key, value)
	return err
}
