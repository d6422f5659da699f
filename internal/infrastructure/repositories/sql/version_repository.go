package sql

import (
	"context"
	"encoding/json"

	"github.com/codemonkeylabs/graffiti-extensions/internal/database"
	customerrors "github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
	"github.com/codemonkeylabs/graffiti-extensions/pkg/txs"
)

// VersionRepository reads and appends post version history straight through
// SQL. The snapshot body is stored as a JSON copy of the post, one row per
// revision, never updated.
type VersionRepository struct {
	db        *database.PostgresDB
	txManager *txs.TxManager
}

func NewVersionRepository(db *database.PostgresDB, txManager *txs.TxManager) *VersionRepository {
	return &VersionRepository{
		db:        db,
		txManager: txManager,
	}
}

func (r *VersionRepository) Append(ctx context.Context, snapshot *models.VersionSnapshot) error {
	return r.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		querier := txs.GetQuerier(ctx, r.db.Pool)

		data, err := json.Marshal(snapshot.Post)
		if err != nil {
			return &customerrors.ErrSQLExecution{Operation: "serialize version snapshot", Cause: err}
		}

		query := `INSERT INTO post_versions (post_id, revision, data, created_at)
			VALUES ($1, (SELECT COALESCE(MAX(revision), 0) + 1 FROM post_versions WHERE post_id = $1), $2, NOW())
			RETURNING id, revision, created_at`

		err = querier.QueryRow(ctx, query, snapshot.PostID, data).
			Scan(&snapshot.ID, &snapshot.Revision, &snapshot.CreatedAt)
		if err != nil {
			return &customerrors.ErrSQLExecution{Operation: "append version snapshot", Cause: err}
		}

		return nil
	})
}

func (r *VersionRepository) History(ctx context.Context, postID int64) ([]*models.VersionSnapshot, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query := `SELECT id, post_id, revision, data, created_at
		FROM post_versions
		WHERE post_id = $1
		ORDER BY revision`

	rows, err := querier.Query(ctx, query, postID)
	if err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: "read version history", Cause: err}
	}
	defer rows.Close()

	var history []*models.VersionSnapshot

	for rows.Next() {
		var (
			snapshot models.VersionSnapshot
			data     []byte
		)

		if err := rows.Scan(&snapshot.ID, &snapshot.PostID, &snapshot.Revision, &data, &snapshot.CreatedAt); err != nil {
			return nil, &customerrors.ErrSQLScan{Entity: "version snapshot", Cause: err}
		}

		if err := json.Unmarshal(data, &snapshot.Post); err != nil {
			return nil, &customerrors.ErrSQLScan{Entity: "version snapshot body", Cause: err}
		}

		history = append(history, &snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: "read version history", Cause: err}
	}

	return history, nil
}
