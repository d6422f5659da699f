package orm

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/codemonkeylabs/graffiti-extensions/internal/database"
	customerrors "github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
	"github.com/codemonkeylabs/graffiti-extensions/pkg/txs"
)

type VersionRepository struct {
	db        *database.PostgresDB
	sq        sq.StatementBuilderType
	txManager *txs.TxManager
}

func NewVersionRepository(db *database.PostgresDB, txManager *txs.TxManager) *VersionRepository {
	return &VersionRepository{
		db:        db,
		sq:        sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
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

		maxQuery := r.sq.Select("COALESCE(MAX(revision), 0)").
			From("post_versions").
			Where(sq.Eq{"post_id": snapshot.PostID})

		query, args, err := maxQuery.ToSql()
		if err != nil {
			return &customerrors.ErrBuildSQLQuery{Operation: "next revision lookup", Cause: err}
		}

		var lastRevision int

		if err := querier.QueryRow(ctx, query, args...).Scan(&lastRevision); err != nil {
			return &customerrors.ErrSQLExecution{Operation: "next revision lookup", Cause: err}
		}

		if snapshot.CreatedAt.IsZero() {
			snapshot.CreatedAt = time.Now()
		}

		snapshot.Revision = lastRevision + 1

		insertQuery := r.sq.Insert("post_versions").
			Columns("post_id", "revision", "data", "created_at").
			Values(snapshot.PostID, snapshot.Revision, data, snapshot.CreatedAt).
			Suffix("RETURNING id")

		query, args, err = insertQuery.ToSql()
		if err != nil {
			return &customerrors.ErrBuildSQLQuery{Operation: "append version snapshot", Cause: err}
		}

		if err := querier.QueryRow(ctx, query, args...).Scan(&snapshot.ID); err != nil {
			return &customerrors.ErrSQLExecution{Operation: "append version snapshot", Cause: err}
		}

		return nil
	})
}

func (r *VersionRepository) History(ctx context.Context, postID int64) ([]*models.VersionSnapshot, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	selectQuery := r.sq.Select("id", "post_id", "revision", "data", "created_at").
		From("post_versions").
		Where(sq.Eq{"post_id": postID}).
		OrderBy("revision")

	query, args, err := selectQuery.ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: "read version history", Cause: err}
	}

	rows, err := querier.Query(ctx, query, args...)
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
