package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"blog-backend/config"
	"blog-backend/db"
	"blog-backend/models"
	"blog-backend/testutils"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	os.Exit(m.Run())
}

// setupApp monte le routeur complet sur une base SQLite jetable
func setupApp(t *testing.T) *gin.Engine {
	previous := db.DB
	cfg := config.Config{
		DBDriver:    config.DriverSQLite,
		DBURL:       filepath.Join(t.TempDir(), "blog.db"),
		CORSOrigins: []string{"*"},
	}
	require.NoError(t, db.InitDB(cfg))

	t.Cleanup(func() {
		if sqlDB, err := db.DB.DB(); err == nil {
			sqlDB.Close()
		}
		db.DB = previous
	})

	return SetupRouter(cfg)
}

func call(t *testing.T, r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestBlogScenario(t *testing.T) {
	r := setupApp(t)

	alice := gofakeit.Username()
	bob := alice + "_2"

	// inscription
	w := call(t, r, http.MethodPost, "/users", "", map[string]string{"username": alice, "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	decode(t, w, &created)
	aliceID := uint(created["id"].(float64))

	w = call(t, r, http.MethodPost, "/users", "", map[string]string{"username": bob, "password": "q"})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &created)
	bobID := uint(created["id"].(float64))

	w = call(t, r, http.MethodPost, "/users", "", map[string]string{"username": alice, "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var usernames []string
	decode(t, call(t, r, http.MethodGet, "/users", "", nil), &usernames)
	assert.Equal(t, []string{alice, bob}, usernames)

	// connexion
	w = call(t, r, http.MethodPost, "/login", "", map[string]string{"username": alice, "password": "p"})
	require.Equal(t, http.StatusOK, w.Code)
	var login map[string]string
	decode(t, w, &login)
	aliceToken := login["token"]
	require.NotEmpty(t, aliceToken)

	w = call(t, r, http.MethodPost, "/login", "", map[string]string{"username": alice, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// post
	w = call(t, r, http.MethodPost, "/posts", aliceToken, map[string]interface{}{
		"title": "Hello", "content": "First post", "user_id": aliceID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &created)
	postID := uint(created["id"].(float64))

	// bascule du like
	like := map[string]uint{"post_id": postID, "user_id": bobID}
	w = call(t, r, http.MethodPost, "/likes", "", like)
	assert.Equal(t, http.StatusCreated, w.Code)

	var post models.PostResponse
	decode(t, call(t, r, http.MethodGet, "/posts/"+itoa(postID), "", nil), &post)
	assert.Equal(t, int64(1), post.Likes)

	var likers []models.LikeUser
	decode(t, call(t, r, http.MethodGet, "/likes/"+itoa(postID), "", nil), &likers)
	assert.Equal(t, []models.LikeUser{{UserID: bobID}}, likers)

	w = call(t, r, http.MethodPost, "/likes", "", like)
	assert.Equal(t, http.StatusOK, w.Code)

	decode(t, call(t, r, http.MethodGet, "/posts/"+itoa(postID), "", nil), &post)
	assert.Equal(t, int64(0), post.Likes)

	// droits
	w = call(t, r, http.MethodPut, "/users/"+itoa(bobID), aliceToken, map[string]string{"username": "stolen"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, r, http.MethodPut, "/users/"+itoa(bobID), "", map[string]string{"username": "stolen"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, r, http.MethodDelete, "/users/"+itoa(aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(t, r, http.MethodDelete, "/posts/"+itoa(postID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodDelete, "/users/"+itoa(aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodGet, "/users/"+itoa(aliceID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrivatePostVisibility(t *testing.T) {
	r := setupApp(t)

	w := call(t, r, http.MethodPost, "/users", "", map[string]string{"username": "owner", "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	token := strings.TrimPrefix(testutils.BearerToken(t, 1), "Bearer ")

	w = call(t, r, http.MethodPost, "/posts", "", map[string]interface{}{
		"title": "Draft", "content": "Hidden", "user_id": 1, "is_public": false,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var posts []models.PostResponse
	decode(t, call(t, r, http.MethodGet, "/posts", "", nil), &posts)
	assert.Empty(t, posts)

	decode(t, call(t, r, http.MethodGet, "/posts", token, nil), &posts)
	assert.Len(t, posts, 1)

	w = call(t, r, http.MethodGet, "/posts/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, r, http.MethodGet, "/posts/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_NotFoundAndRequestID(t *testing.T) {
	r := SetupRouter(config.Config{CORSOrigins: []string{"*"}})

	w := call(t, r, http.MethodGet, "/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)

	cfg := corsConfig([]string{"http://front.test"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"http://front.test"}, cfg.AllowOrigins)
}

func TestUpdateAcceptsWhatCreateAccepted(t *testing.T) {
	r := setupApp(t)

	username := strings.Repeat("é", 31)
	w := call(t, r, http.MethodPost, "/users", "", map[string]string{"username": "writer", "password": "p"})
	require.Equal(t, http.StatusCreated, w.Code)
	token := strings.TrimPrefix(testutils.BearerToken(t, 1), "Bearer ")

	title := strings.Repeat("é", 60)
	w = call(t, r, http.MethodPost, "/posts", token, map[string]interface{}{
		"title": title, "content": "c", "user_id": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(t, r, http.MethodPut, "/posts/1", token, map[string]string{"title": title})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(t, r, http.MethodPut, "/users/1", token, map[string]string{"username": username})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.UserResponse
	decode(t, call(t, r, http.MethodGet, "/users/1", "", nil), &user)
	assert.Equal(t, username, user.Username)
}
