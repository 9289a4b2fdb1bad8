package routes

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/testutil"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    jsoniter.RawMessage `json:"data"`
	Error   string              `json:"error"`
	Details []string            `json:"details"`
}

type server struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

func newServer(t *testing.T) *server {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenMins: 15},
		Borrow:  config.BorrowConfig{DefaultDays: 14, MaxDays: 90},
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	middleware.Setup(app, cfg)
	Setup(app, services.NewRegistry(db, cfg), cfg)

	return &server{t: t, app: app, db: db}
}

func (s *server) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	if len(raw) > 0 {
		require.NoError(s.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (s *server) login(username, password string) string {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"username": username, "password": password})
	require.Equal(s.t, http.StatusOK, status, env.Error)

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.AccessToken
}

func idOf(t *testing.T, env envelope, key string) uint {
	t.Helper()
	var data map[string]struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data[key].ID
}

func TestPublicAndProtectedRoutes(t *testing.T) {
	s := newServer(t)

	status, _ := s.do(http.MethodGet, "/api/v1/books", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodGet, "/api/v1/authors", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, env := s.do(http.MethodGet, "/api/v1/members", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, _ = s.do(http.MethodPost, "/api/v1/borrowed-books/borrow", "not-a-token", fiber.Map{"book_id": 1, "member_id": 1})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodPost, "/api/v1/books", "", fiber.Map{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodGet, "/api/v1/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLoginFailures(t *testing.T) {
	s := newServer(t)
	testutil.Librarian(t, s.db, "desk", "correct-horse", domain.RoleLibrarian, true)
	testutil.Librarian(t, s.db, "gone", "correct-horse", domain.RoleLibrarian, false)

	status, _ := s.do(http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"username": "desk", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"username": "gone", "password": "correct-horse"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env := s.do(http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"username": "desk"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Details, "password: is required")

	token := s.login("desk", "correct-horse")
	status, env = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"username":"desk"`)
}

func TestBorrowLifecycleOverHTTP(t *testing.T) {
	s := newServer(t)
	testutil.Librarian(t, s.db, "desk", "correct-horse", domain.RoleLibrarian, true)
	token := s.login("desk", "correct-horse")

	status, env := s.do(http.MethodPost, "/api/v1/authors", token, fiber.Map{"name": "Italo Calvino"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	authorID := idOf(t, env, "author")

	status, _ = s.do(http.MethodPost, "/api/v1/authors", token, fiber.Map{"name": "Italo Calvino"})
	assert.Equal(t, http.StatusConflict, status)

	status, env = s.do(http.MethodPost, "/api/v1/books", token, fiber.Map{"author_id": authorID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Details, "title: is required")
	assert.Contains(t, env.Details, "isbn: is required")

	status, env = s.do(http.MethodPost, "/api/v1/books", token, fiber.Map{
		"title": "Invisible Cities", "isbn": "978-0156453806", "author_id": authorID,
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	bookID := idOf(t, env, "book")

	status, env = s.do(http.MethodPost, "/api/v1/members", token, fiber.Map{
		"first_name": "Marco", "last_name": "Polo", "email": "marco@venice.it", "phone": "555-1271",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	memberID := idOf(t, env, "member")

	status, env = s.do(http.MethodPost, "/api/v1/members", token, fiber.Map{
		"first_name": "Kublai", "last_name": "Khan", "email": "not-an-email", "phone": "555-1260",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Details, "email: must be a valid email")

	status, env = s.do(http.MethodPost, "/api/v1/borrowed-books/borrow", token, fiber.Map{
		"book_id": bookID, "member_id": memberID, "duration_days": 0,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Details, "duration_days: must be a positive integer")

	status, _ = s.do(http.MethodPost, "/api/v1/borrowed-books/borrow", token, fiber.Map{"book_id": 999, "member_id": memberID})
	assert.Equal(t, http.StatusNotFound, status)

	status, env = s.do(http.MethodPost, "/api/v1/borrowed-books/borrow", token, fiber.Map{"book_id": bookID, "member_id": memberID})
	require.Equal(t, http.StatusCreated, status, env.Error)
	borrowID := idOf(t, env, "borrow")

	status, env = s.do(http.MethodPost, "/api/v1/borrowed-books/borrow", token, fiber.Map{"book_id": bookID, "member_id": memberID})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "book already borrowed", env.Error)

	status, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%d", bookID), "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"available":false`)

	status, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/borrowed-books/member/%d?current=true", memberID), token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodGet, "/api/v1/borrowed-books/due-before?date=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodGet, "/api/v1/borrowed-books/due-before?date=2999-01-01", token, nil)
	assert.Equal(t, http.StatusOK, status)

	path := fmt.Sprintf("/api/v1/borrowed-books/%d/return", borrowID)
	status, env = s.do(http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Contains(t, string(env.Data), `"status":"RETURNED"`)

	status, env = s.do(http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "already returned", env.Error)

	status, _ = s.do(http.MethodPost, "/api/v1/borrowed-books/999/return", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodGet, "/api/v1/borrowed-books?status=returned", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodGet, "/api/v1/borrowed-books?status=lost", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodGet, "/api/v1/dashboard/overview", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestDueBeforeDefaultsToNow(t *testing.T) {
	s := newServer(t)
	testutil.Librarian(t, s.db, "desk", "correct-horse", domain.RoleLibrarian, true)
	token := s.login("desk", "correct-horse")

	author := testutil.Author(t, s.db, "Italo Calvino")
	late := testutil.Book(t, s.db, author.ID, "9780156453806", "Invisible Cities")
	onTime := testutil.Book(t, s.db, author.ID, "9780156439619", "Cosmicomics")
	member := testutil.Member(t, s.db, "Marco", "Polo", "marco@venice.it", "555-1271")

	now := time.Now().UTC()
	overdue := testutil.Loan(t, s.db, late.ID, member.ID, now.AddDate(0, 0, -30), now.AddDate(0, 0, -16))
	testutil.Loan(t, s.db, onTime.ID, member.ID, now, now.AddDate(0, 0, 14))

	status, env := s.do(http.MethodGet, "/api/v1/borrowed-books/due-before", token, nil)
	require.Equal(t, http.StatusOK, status, env.Error)

	var data struct {
		Borrows []struct {
			ID uint `json:"id"`
		} `json:"borrows"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Borrows, 1)
	assert.Equal(t, overdue.ID, data.Borrows[0].ID)
}

func TestBlankFieldsRejected(t *testing.T) {
	s := newServer(t)
	testutil.Librarian(t, s.db, "desk", "correct-horse", domain.RoleLibrarian, true)
	token := s.login("desk", "correct-horse")
	author := testutil.Author(t, s.db, "Italo Calvino")
	book := testutil.Book(t, s.db, author.ID, "9780156453806", "Invisible Cities")

	tests := []struct {
		name   string
		method string
		path   string
		body   fiber.Map
		fields []string
	}{
		{
			name:   "book create",
			method: http.MethodPost,
			path:   "/api/v1/books",
			body:   fiber.Map{"title": "   ", "isbn": "   ", "author_id": author.ID},
			fields: []string{"title: is required", "isbn: is required"},
		},
		{
			name:   "book update",
			method: http.MethodPut,
			path:   fmt.Sprintf("/api/v1/books/%d", book.ID),
			body:   fiber.Map{"title": "\t", "isbn": "9780156453806", "author_id": author.ID},
			fields: []string{"title: is required"},
		},
		{
			name:   "author",
			method: http.MethodPost,
			path:   "/api/v1/authors",
			body:   fiber.Map{"name": "  "},
			fields: []string{"name: is required"},
		},
		{
			name:   "category",
			method: http.MethodPost,
			path:   "/api/v1/categories",
			body:   fiber.Map{"name": " "},
			fields: []string{"name: is required"},
		},
		{
			name:   "member",
			method: http.MethodPost,
			path:   "/api/v1/members",
			body:   fiber.Map{"first_name": " ", "last_name": " ", "email": "marco@venice.it", "phone": "  "},
			fields: []string{"first_name: is required", "last_name: is required", "phone: is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := s.do(tt.method, tt.path, token, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.ElementsMatch(t, tt.fields, env.Details)
		})
	}

	var books int64
	require.NoError(t, s.db.Table("books").Count(&books).Error)
	assert.EqualValues(t, 1, books)
}

func TestBadPathParameters(t *testing.T) {
	s := newServer(t)

	status, env := s.do(http.MethodGet, "/api/v1/books/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Details, "id: must be a positive integer")

	status, _ = s.do(http.MethodGet, "/api/v1/books/42", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodGet, "/api/v1/books?available=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminOnlyDeletes(t *testing.T) {
	s := newServer(t)
	testutil.Librarian(t, s.db, "desk", "correct-horse", domain.RoleLibrarian, true)
	testutil.Librarian(t, s.db, "chief", "correct-horse", domain.RoleAdmin, true)
	member := testutil.Member(t, s.db, "Marco", "Polo", "marco@venice.it", "555-1271")

	path := fmt.Sprintf("/api/v1/members/%d", member.ID)

	status, _ := s.do(http.MethodDelete, path, s.login("desk", "correct-horse"), nil)
	assert.Equal(t, http.StatusForbidden, status)

	admin := s.login("chief", "correct-horse")
	status, _ = s.do(http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	prev := config.DB
	config.DB = s.db
	t.Cleanup(func() { config.DB = prev })

	status, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
}
