package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/musicvideos/internal/dbx"
	"github.com/dmitrijs2005/musicvideos/internal/server/repositories/users"
	"github.com/dmitrijs2005/musicvideos/internal/server/repositories/videos"
)

// RepositoryManager vends repositories bound to a DBTX, so that services can
// use the same repositories inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Videos(db dbx.DBTX) videos.Repository
}
