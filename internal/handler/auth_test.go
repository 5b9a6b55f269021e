package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cleaning-service-api/internal/config"
	"github.com/iliyamo/cleaning-service-api/internal/model"
	"github.com/iliyamo/cleaning-service-api/internal/repository"
	"github.com/iliyamo/cleaning-service-api/internal/utils"
)

// fakeUsers is an in-memory UserStore.
type fakeUsers struct {
	nextID uint64
	byName map[string]model.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byName: map[string]model.User{}} }

func (f *fakeUsers) Create(_ context.Context, username, password string, cost int) (uint64, error) {
	if _, ok := f.byName[username]; ok {
		return 0, repository.ErrUsernameExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.byName[username] = model.User{ID: f.nextID, Username: username, PasswordHash: hash}
	return f.nextID, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func testCfg() config.Config {
	return config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, BcryptCost: bcrypt.MinCost}
}

func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestRegister_CreatesUser(t *testing.T) {
	h := NewAuthHandler(testCfg(), newFakeUsers())

	rec := postJSON(t, h.Register, `{"username":"alice","password":"pw123"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alice"`)
}

func TestRegister_DuplicateUsernameConflicts(t *testing.T) {
	users := newFakeUsers()
	h := NewAuthHandler(testCfg(), users)

	rec := postJSON(t, h.Register, `{"username":"alice","password":"pw123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Register, `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	h := NewAuthHandler(testCfg(), newFakeUsers())

	for _, body := range []string{`{}`, `{"username":"alice"}`, `{"password":"pw123"}`} {
		rec := postJSON(t, h.Register, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestRegister_StoresOnlyHash(t *testing.T) {
	users := newFakeUsers()
	h := NewAuthHandler(testCfg(), users)

	postJSON(t, h.Register, `{"username":"alice","password":"pw123"}`)
	u := users.byName["alice"]
	assert.NotContains(t, u.PasswordHash, "pw123")
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	users := newFakeUsers()
	h := NewAuthHandler(testCfg(), users)
	postJSON(t, h.Register, `{"username":"alice","password":"pw123"}`)

	rec := postJSON(t, h.Login, `{"username":"alice","password":"pw123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	uid, err := utils.ParseAccessToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), uid)
}

func TestLogin_BadCredentials(t *testing.T) {
	users := newFakeUsers()
	h := NewAuthHandler(testCfg(), users)
	postJSON(t, h.Register, `{"username":"alice","password":"pw123"}`)

	// Unknown user and wrong password must be indistinguishable.
	recUnknown := postJSON(t, h.Login, `{"username":"bob","password":"pw123"}`)
	recWrongPw := postJSON(t, h.Login, `{"username":"alice","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, recWrongPw.Code)
	assert.JSONEq(t, recUnknown.Body.String(), recWrongPw.Body.String())
}
