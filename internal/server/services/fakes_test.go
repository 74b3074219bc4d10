package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/boilerparts/internal/dbx"
	"github.com/dmitrijs2005/boilerparts/internal/server/models"
	cartrepo "github.com/dmitrijs2005/boilerparts/internal/server/repositories/cart"
	partsrepo "github.com/dmitrijs2005/boilerparts/internal/server/repositories/parts"
	sessionsrepo "github.com/dmitrijs2005/boilerparts/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/boilerparts/internal/server/repositories/users"
)

// --- helpers shared by the service tests ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	conflictOut *models.User
	conflictErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	if f.conflictErr != nil {
		return nil, f.conflictErr
	}
	return f.conflictOut, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, username string) error { return nil }

type fakePartsRepo struct {
	getOut *models.BoilerPart
	getErr error

	listCount int64
	listOut   []*models.BoilerPart
	listErr   error
}

func (f *fakePartsRepo) GetByID(ctx context.Context, id int64) (*models.BoilerPart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakePartsRepo) GetByName(ctx context.Context, name string) (*models.BoilerPart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakePartsRepo) List(ctx context.Context, filter partsrepo.Filter, page partsrepo.Page) (int64, []*models.BoilerPart, error) {
	return f.listCount, f.listOut, f.listErr
}

func (f *fakePartsRepo) Bestsellers(ctx context.Context, page partsrepo.Page) (int64, []*models.BoilerPart, error) {
	return f.listCount, f.listOut, f.listErr
}

func (f *fakePartsRepo) New(ctx context.Context, page partsrepo.Page) (int64, []*models.BoilerPart, error) {
	return f.listCount, f.listOut, f.listErr
}

func (f *fakePartsRepo) Search(ctx context.Context, query string) (int64, []*models.BoilerPart, error) {
	return f.listCount, f.listOut, f.listErr
}

func (f *fakePartsRepo) Create(ctx context.Context, part *models.BoilerPart) (*models.BoilerPart, error) {
	return part, nil
}

func (f *fakePartsRepo) DeleteByVendorCode(ctx context.Context, vendorCode string) error { return nil }

type fakeCartRepo struct {
	allOut []*models.CartItem
	allErr error

	created   *models.CartItem
	createErr error

	countOut int64
	countErr error

	priceOut int64
	priceErr error

	deleteErr error
}

func (f *fakeCartRepo) GetAllByUser(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.allOut, nil
}

func (f *fakeCartRepo) Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = item
	return item, nil
}

func (f *fakeCartRepo) UpdateCount(ctx context.Context, userID, partID, count int64) (int64, error) {
	return f.countOut, f.countErr
}

func (f *fakeCartRepo) UpdateTotalPrice(ctx context.Context, userID, partID, totalPrice int64) (int64, error) {
	return f.priceOut, f.priceErr
}

func (f *fakeCartRepo) DeleteOne(ctx context.Context, userID, partID int64) error { return f.deleteErr }
func (f *fakeCartRepo) DeleteAll(ctx context.Context, userID int64) error         { return f.deleteErr }

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePartsRepo
	c *fakeCartRepo
	s sessionsrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Parts(db dbx.DBTX) partsrepo.Repository         { return m.p }
func (m *fakeRepoManager) Cart(db dbx.DBTX) cartrepo.Repository           { return m.c }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository   { return m.s }
