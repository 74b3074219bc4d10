package httpapi

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/boilerparts/internal/common"
	"github.com/dmitrijs2005/boilerparts/internal/dbx"
	"github.com/dmitrijs2005/boilerparts/internal/logging"
	"github.com/dmitrijs2005/boilerparts/internal/server/auth"
	"github.com/dmitrijs2005/boilerparts/internal/server/config"
	"github.com/dmitrijs2005/boilerparts/internal/server/models"
	cartrepo "github.com/dmitrijs2005/boilerparts/internal/server/repositories/cart"
	partsrepo "github.com/dmitrijs2005/boilerparts/internal/server/repositories/parts"
	sessionsrepo "github.com/dmitrijs2005/boilerparts/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/boilerparts/internal/server/repositories/users"
	"github.com/dmitrijs2005/boilerparts/internal/server/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byID   map[int64]*models.User
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
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut != nil {
		return f.getOut, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut != nil {
		return f.getOut, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	if f.conflictErr != nil {
		return nil, f.conflictErr
	}
	if f.conflictOut != nil {
		return f.conflictOut, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Delete(ctx context.Context, username string) error { return nil }

type fakePartsRepo struct {
	getOut *models.BoilerPart
	getErr error

	listCount int64
	listOut   []*models.BoilerPart
	listErr   error

	lastFilter partsrepo.Filter
	lastPage   partsrepo.Page
	lastQuery  string
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
	f.lastFilter, f.lastPage = filter, page
	return f.listCount, f.listOut, f.listErr
}

func (f *fakePartsRepo) Bestsellers(ctx context.Context, page partsrepo.Page) (int64, []*models.BoilerPart, error) {
	f.lastPage = page
	return f.listCount, f.listOut, f.listErr
}

func (f *fakePartsRepo) New(ctx context.Context, page partsrepo.Page) (int64, []*models.BoilerPart, error) {
	f.lastPage = page
	return f.listCount, f.listOut, f.listErr
}

func (f *fakePartsRepo) Search(ctx context.Context, query string) (int64, []*models.BoilerPart, error) {
	f.lastQuery = query
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

	deletedOne bool
	deletedAll bool
	deleteErr  error
	lastUserID int64
	lastPartID int64
}

func (f *fakeCartRepo) GetAllByUser(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	f.lastUserID = userID
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
	f.lastUserID, f.lastPartID = userID, partID
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.countOut, nil
}

func (f *fakeCartRepo) UpdateTotalPrice(ctx context.Context, userID, partID, totalPrice int64) (int64, error) {
	f.lastUserID, f.lastPartID = userID, partID
	if f.priceErr != nil {
		return 0, f.priceErr
	}
	return f.priceOut, nil
}

func (f *fakeCartRepo) DeleteOne(ctx context.Context, userID, partID int64) error {
	f.lastUserID, f.lastPartID = userID, partID
	f.deletedOne = true
	return f.deleteErr
}

func (f *fakeCartRepo) DeleteAll(ctx context.Context, userID int64) error {
	f.lastUserID = userID
	f.deletedAll = true
	return f.deleteErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePartsRepo
	c *fakeCartRepo
	s sessionsrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Parts(db dbx.DBTX) partsrepo.Repository       { return m.p }
func (m *fakeRepoManager) Cart(db dbx.DBTX) cartrepo.Repository         { return m.c }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }

// --- test server wiring ---

type testEnv struct {
	router *gin.Engine
	rm     *fakeRepoManager
	store  *sessionsrepo.MemoryRepository
	mock   sqlmock.Sqlmock
	db     *sql.DB
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		EndpointAddr:            ":0",
		SecretKey:               "k",
		SessionValidityDuration: time.Hour,
		S3Bucket:                "part-images",
	}

	store := sessionsrepo.NewMemoryRepository()
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[int64]*models.User{}},
		p: &fakePartsRepo{},
		c: &fakeCartRepo{},
		s: store,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := NewServer(cfg, logger,
		services.NewUserService(db, rm, cfg),
		services.NewCatalogService(db, rm),
		services.NewCartService(db, rm),
		services.NewImageService(db, rm, cfg))

	return &testEnv{router: srv.Router(), rm: rm, store: store, mock: mock, db: db, cfg: cfg}
}

// loginAs opens a session for the given user and returns the cookie the
// client would carry.
func (e *testEnv) loginAs(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	e.rm.u.byID[user.ID] = user

	session, err := e.store.Create(context.Background(), user.ID, time.Hour)
	if err != nil {
		t.Fatalf("session create error: %v", err)
	}
	token, err := auth.GenerateToken(session.ID, []byte(e.cfg.SecretKey), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return &http.Cookie{Name: common.SessionCookieName, Value: token}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return string(hash)
}
