package song

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunebox/tunebox/internal/auth"
	"github.com/tunebox/tunebox/internal/logging"
	"github.com/tunebox/tunebox/internal/middleware"
)

func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	svc, _, _, _ := newService(t)
	logger := logging.Discard()

	codec, err := auth.NewCodec([]byte("song-handler-test-secret"), 0)
	require.NoError(t, err)
	token, err := codec.Issue("user-1")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger)})
	h := NewHandler(svc)
	group := app.Group("/song", middleware.AuthGate(codec, logger, nil))
	group.Post("/upload", h.Upload)
	group.Get("/list", h.List)
	group.Post("/favorite", h.Favorite)
	group.Get("/list/favorites", h.ListFavorites)
	return app, token
}

func multipartBody(t *testing.T, withThumbnail bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("artist", "Ann"))
	require.NoError(t, w.WriteField("song_name", "Blue"))
	require.NoError(t, w.WriteField("hex_code", "1e90ff"))

	part, err := w.CreateFormFile("song", "blue.mp3")
	require.NoError(t, err)
	_, err = part.Write([]byte("audio"))
	require.NoError(t, err)

	if withThumbnail {
		part, err = w.CreateFormFile("thumbnail", "blue.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("img"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func send(t *testing.T, app *fiber.App, method, path, token, contentType string, body io.Reader) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, payload
}

func TestUploadListFavoriteFlow(t *testing.T) {
	app, token := newTestApp(t)

	body, ct := multipartBody(t, true)
	status, payload := send(t, app, fiber.MethodPost, "/song/upload", token, ct, body)
	require.Equal(t, fiber.StatusCreated, status, string(payload))

	var created Song
	require.NoError(t, json.Unmarshal(payload, &created))
	assert.Equal(t, "Blue", created.SongName)
	assert.Equal(t, "Ann", created.Artist)
	assert.NotEmpty(t, created.SongURL)

	status, payload = send(t, app, fiber.MethodGet, "/song/list", token, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var songs []Song
	require.NoError(t, json.Unmarshal(payload, &songs))
	require.Len(t, songs, 1)

	fav := `{"song_id":"` + created.ID + `"}`
	status, payload = send(t, app, fiber.MethodPost, "/song/favorite", token, fiber.MIMEApplicationJSON, strings.NewReader(fav))
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":true}`, string(payload))

	status, payload = send(t, app, fiber.MethodGet, "/song/list/favorites", token, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var favs []Favorite
	require.NoError(t, json.Unmarshal(payload, &favs))
	require.Len(t, favs, 1)
	assert.Equal(t, "user-1", favs[0].UserID)
	require.NotNil(t, favs[0].Song)
	assert.Equal(t, created.ID, favs[0].Song.ID)

	status, payload = send(t, app, fiber.MethodPost, "/song/favorite", token, fiber.MIMEApplicationJSON, strings.NewReader(fav))
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":false}`, string(payload))
}

func TestUploadMissingThumbnail(t *testing.T) {
	app, token := newTestApp(t)

	body, ct := multipartBody(t, false)
	status, _ := send(t, app, fiber.MethodPost, "/song/upload", token, ct, body)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSongRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := send(t, app, fiber.MethodGet, "/song/list", "", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	body, ct := multipartBody(t, true)
	status, _ = send(t, app, fiber.MethodPost, "/song/upload", "", ct, body)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
