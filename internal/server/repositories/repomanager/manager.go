package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/boilerparts/internal/dbx"
	"github.com/dmitrijs2005/boilerparts/internal/server/repositories/cart"
	"github.com/dmitrijs2005/boilerparts/internal/server/repositories/parts"
	"github.com/dmitrijs2005/boilerparts/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/boilerparts/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Parts(db dbx.DBTX) parts.Repository
	Cart(db dbx.DBTX) cart.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
