// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var (
	sqliteSQL   = sq.StatementBuilder.PlaceholderFormat(sq.Question)
	postgresSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
)

// local store, SQLite
const (
	selectStoreInfo = `SELECT name, version FROM store_info WHERE id = 1;`
	insertStoreInfo = `INSERT INTO store_info (id, name, version) VALUES (1, ?, ?);`
	updateStoreInfo = `UPDATE store_info SET version = ? WHERE id = 1;`

	selectCollectionKeyPath = `SELECT key_path FROM collections WHERE name = ?;`
	registerCollection      = `INSERT OR IGNORE INTO collections (name, key_path, key_strategy, sync_enabled, since)
		VALUES (?, ?, ?, ?, ?);`
	registerIndex = `INSERT OR IGNORE INTO collection_indexes (collection, name, field, since)
		VALUES (?, ?, ?, ?);`
	countCollectionRecords = `SELECT COUNT(*) FROM records WHERE collection = ?;`

	selectNextSequence = `SELECT next_seq FROM collections WHERE name = ?;`
	bumpNextSequence   = `UPDATE collections SET next_seq = MAX(next_seq, ?) WHERE name = ?;`

	upsertRecord = `INSERT INTO records (collection, key, key_num, doc) VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, key) DO UPDATE SET key_num = excluded.key_num, doc = excluded.doc;`
	selectRecord            = `SELECT doc FROM records WHERE collection = ? AND key = ?;`
	deleteRecord            = `DELETE FROM records WHERE collection = ? AND key = ?;`
	deleteCollectionRecords = `DELETE FROM records WHERE collection = ?;`

	insertIndexEntry          = `INSERT OR IGNORE INTO record_index_entries (collection, index_name, value, key) VALUES (?, ?, ?, ?);`
	deleteRecordIndexEntries  = `DELETE FROM record_index_entries WHERE collection = ? AND key = ?;`
	deleteCollectionIndexRows = `DELETE FROM record_index_entries WHERE collection = ?;`

	insertChange = `INSERT INTO change_queue (collection, operation, payload, enqueued_at) VALUES (?, ?, ?, ?);`
	countPending = `SELECT collection, COUNT(*) FROM change_queue GROUP BY collection ORDER BY collection;`

	selectMeta = `SELECT value FROM sync_meta WHERE key = ?;`
	upsertMeta = `INSERT INTO sync_meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`
	deleteMeta = `DELETE FROM sync_meta WHERE key = ?;`
)

// remote store, Postgres
const (
	lockCollectionExclusive = `SELECT pg_advisory_xact_lock(hashtext($1));`
	lockCollectionShared    = `SELECT pg_advisory_xact_lock_shared(hashtext($1));`

	upsertRemoteRecord = `INSERT INTO records (collection, key, doc, deleted, revision, updated_at)
		VALUES ($1, $2, $3, FALSE, nextval('record_revision'), now())
		ON CONFLICT (collection, key) DO UPDATE
		SET doc = EXCLUDED.doc, deleted = FALSE, revision = EXCLUDED.revision, updated_at = EXCLUDED.updated_at;`

	tombstoneRemoteRecord = `UPDATE records
		SET deleted = TRUE, revision = nextval('record_revision'), updated_at = now()
		WHERE collection = $1 AND key = $2 AND NOT deleted;`

	tombstoneRemoteCollection = `UPDATE records
		SET deleted = TRUE, revision = nextval('record_revision'), updated_at = now()
		WHERE collection = $1 AND NOT deleted;`

	selectRemoteRecord = `SELECT doc FROM records WHERE collection = $1 AND key = $2 AND NOT deleted;`

	selectMaxSequenceKey = `SELECT COALESCE(MAX(key::bigint), 0) FROM records WHERE collection = $1 AND key ~ '^[0-9]+$';`

	selectCollectionRevision = `SELECT COALESCE(MAX(revision), 0) FROM records WHERE collection = $1;`

	pingQuery = `SELECT 1;`
)

// recordOrder sorts numeric keys numerically before all other keys.
var recordOrder = []string{"key_num IS NULL", "key_num", "key"}

func buildGetAllQuery(collection string) (string, []any, error) {
	query, args, err := sqliteSQL.
		Select("doc").
		From("records").
		Where(sq.Eq{"collection": collection}).
		OrderBy(recordOrder...).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildGetByIndexQuery(collection, index, encodedValue string) (string, []any, error) {
	query, args, err := sqliteSQL.
		Select("r.doc").
		From("records r").
		Join("record_index_entries e ON e.collection = r.collection AND e.key = r.key").
		Where(sq.Eq{
			"e.collection": collection,
			"e.index_name": index,
			"e.value":      encodedValue,
		}).
		OrderBy("r.key_num IS NULL", "r.key_num", "r.key").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDrainQuery(collection string) (string, []any, error) {
	query, args, err := sqliteSQL.
		Select("id", "collection", "operation", "payload", "enqueued_at").
		From("change_queue").
		Where(sq.Eq{"collection": collection}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildAcknowledgeQuery(ids []int64) (string, []any, error) {
	query, args, err := sqliteSQL.
		Delete("change_queue").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectCollectionDocsQuery(collection string) (string, []any, error) {
	query, args, err := sqliteSQL.
		Select("key", "doc").
		From("records").
		Where(sq.Eq{"collection": collection}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildChangesQuery selects the rows of a collection up to revision upTo.
// Without since it returns the live rows only; with since it returns every
// row, tombstones included, changed after since.
func buildChangesQuery(collection string, since *int64, upTo int64) (string, []any, error) {
	builder := postgresSQL.
		Select("key", "doc", "deleted", "revision").
		From("records").
		Where(sq.Eq{"collection": collection}).
		Where(sq.LtOrEq{"revision": upTo})

	if since == nil {
		builder = builder.Where(sq.Eq{"deleted": false})
	} else {
		builder = builder.Where(sq.Gt{"revision": *since})
	}

	query, args, err := builder.OrderBy("revision").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildListRemoteQuery(collection string) (string, []any, error) {
	query, args, err := postgresSQL.
		Select("doc").
		From("records").
		Where(sq.Eq{"collection": collection, "deleted": false}).
		OrderBy("key").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildFindByFieldQuery matches a top-level document field against the
// canonical JSON encoding of the value, so 5 and "5" do not match.
func buildFindByFieldQuery(collection, field, encodedValue string) (string, []any, error) {
	query, args, err := postgresSQL.
		Select("doc").
		From("records").
		Where(sq.Eq{"collection": collection, "deleted": false}).
		Where(sq.Expr("doc -> ? = ?::jsonb", field, encodedValue)).
		OrderBy("key").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
