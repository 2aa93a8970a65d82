package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/backtracking-maze/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenizer struct {
	claims map[string]interface{}
}

func (s *stubTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "good", nil
}

func (s *stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return s.claims, nil
}

type stubAuth struct {
	user *dmn.User
	err  error
}

func (s *stubAuth) Register(_ context.Context, username, _ string) (*dmn.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dmn.User{ID: s.user.ID, Username: username}, nil
}

func (s *stubAuth) SignIn(context.Context, string, string) (*dmn.User, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.user, "token", nil
}

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	newEngine := func(claims map[string]interface{}) *gin.Engine {
		r := gin.New()
		r.Use(Authoriz(&stubTokenizer{claims: claims}))
		r.GET("/me", func(c *gin.Context) {
			id, ok := UserID(c)
			if !ok {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.String(http.StatusOK, id.String())
		})
		return r
	}

	request := func(r *gin.Engine, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	r := newEngine(map[string]interface{}{"userID": userID.String()})

	t.Run("Valid bearer token", func(t *testing.T) {
		rec := request(r, "Bearer good")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), rec.Body.String())
	})

	t.Run("Missing or malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(r, "").Code)
		assert.Equal(t, http.StatusUnauthorized, request(r, "good").Code)
		assert.Equal(t, http.StatusUnauthorized, request(r, "Basic good").Code)
		assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer bad").Code)
	})

	t.Run("Claims without a user ID", func(t *testing.T) {
		noID := newEngine(map[string]interface{}{"username": "maze_runner"})
		assert.Equal(t, http.StatusUnauthorized, request(noID, "Bearer good").Code)
	})
}

func TestIdentityServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuth{user: &dmn.User{ID: uuid.New(), Username: "maze_runner"}}
	r := gin.New()
	NewIdentityServer(auth).RegisterPublic(r.Group("/v1"))

	post := func(path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		_ = json.NewEncoder(&buf).Encode(body)
		req := httptest.NewRequest(http.MethodPost, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}
	creds := AuthRequest{Username: "maze_runner", Password: "whatever"}

	t.Run("Register", func(t *testing.T) {
		rec := post("/v1/auth/register", creds)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), auth.user.ID.String())
	})

	t.Run("Register errors", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, post("/v1/auth/register", gin.H{"username": "x"}).Code)

		auth.err = dmn.ErrUsernameTaken
		assert.Equal(t, http.StatusConflict, post("/v1/auth/register", creds).Code)
		auth.err = dmn.ErrWeakPassword
		assert.Equal(t, http.StatusBadRequest, post("/v1/auth/register", creds).Code)
		auth.err = errors.New("mongo down")
		assert.Equal(t, http.StatusInternalServerError, post("/v1/auth/register", creds).Code)
		auth.err = nil
	})

	t.Run("Login", func(t *testing.T) {
		rec := post("/v1/auth/login", creds)
		require.Equal(t, http.StatusOK, rec.Code)

		var res AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "token", res.Token)
		assert.Equal(t, auth.user.ID.String(), res.ID)
	})

	t.Run("Login errors", func(t *testing.T) {
		auth.err = dmn.ErrInvalidCredentials
		assert.Equal(t, http.StatusUnauthorized, post("/v1/auth/login", creds).Code)
		auth.err = errors.New("token signing failed")
		assert.Equal(t, http.StatusInternalServerError, post("/v1/auth/login", creds).Code)
		auth.err = nil
	})
}
