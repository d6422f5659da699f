package repositories

import (
	"log/slog"

	"github.com/codemonkeylabs/graffiti-extensions/internal/config"
	"github.com/codemonkeylabs/graffiti-extensions/internal/database"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	domainrepos "github.com/codemonkeylabs/graffiti-extensions/internal/domain/repositories"
	"github.com/codemonkeylabs/graffiti-extensions/internal/infrastructure/repositories/orm"
	sqlrepo "github.com/codemonkeylabs/graffiti-extensions/internal/infrastructure/repositories/sql"
	"github.com/codemonkeylabs/graffiti-extensions/pkg/txs"
)

type Factory struct {
	db        *database.PostgresDB
	txManager *txs.TxManager
	config    *config.Config
	logger    *slog.Logger
}

func NewFactory(db *database.PostgresDB, txManager *txs.TxManager, config *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		db:        db,
		txManager: txManager,
		config:    config,
		logger:    logger,
	}
}

func (f *Factory) CreateVersionRepository() (domainrepos.VersionRepository, error) {
	switch f.config.DatabaseAccessType {
	case config.SquirrelAccess:
		f.logger.Info("Creating Squirrel version repository")
		return orm.NewVersionRepository(f.db, f.txManager), nil
	case config.SQLAccess:
		f.logger.Info("Creating SQL version repository")
		return sqlrepo.NewVersionRepository(f.db, f.txManager), nil
	default:
		return nil, &errors.ErrUnknownDBAccessType{AccessType: string(f.config.DatabaseAccessType)}
	}
}
