package api

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image/png"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidhyutcables/player-card/internal/assets"
	"github.com/vidhyutcables/player-card/internal/card"
	"github.com/vidhyutcables/player-card/internal/roster"
	"github.com/vidhyutcables/player-card/internal/scout"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	comp, err := card.New(assets.NewResolver(), card.DefaultLayout(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r, &Server{Compositor: comp, Scout: scout.New("")})
	return r
}

func TestHealth(t *testing.T) {
	r := testRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRenderBatchRequiresSharedAssets(t *testing.T) {
	r := testRouter(t)
	body, _ := json.Marshal(map[string]any{
		"players": []roster.Player{{Name: "A"}},
		"logo":    "logo.png",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cards/render", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenderBatchReturnsZip(t *testing.T) {
	r := testRouter(t)
	body, _ := json.Marshal(map[string]any{
		"players": []roster.Player{
			{Name: "Virat Kohli", Role: "Batsman", BattingStyle: "RHB", BowlingStyle: "RM", FormNumber: 96},
			{Name: "MS Dhoni", Role: "Keeper", BattingStyle: "RHB", BowlingStyle: "N/A", FormNumber: 88},
		},
		"org_portrait": "org.png",
		"logo":         "logo.png",
		"batch_name":   "Test XI",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cards/render", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["Virat_Kohli.png"])
	assert.True(t, names["MS_Dhoni.png"])
	assert.True(t, names["cards.txt"])
}

func TestRenderSingleCardReturnsPNG(t *testing.T) {
	r := testRouter(t)
	body, _ := json.Marshal(map[string]any{
		"player":       roster.Player{Name: "Virat Kohli", Role: "Batsman", FormNumber: 96},
		"org_portrait": "org.png",
		"logo":         "logo.png",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/card/render", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 850, img.Bounds().Dy())
}

func TestRosterUpload(t *testing.T) {
	r := testRouter(t)

	var buf bytes.Buffer
	mw := newMultipart(t, &buf, "file", "roster.csv",
		"name,role,form_number\nVirat Kohli,Batsman,96\n")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/roster", &buf)
	req.Header.Set("Content-Type", mw)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count   int             `json:"count"`
		Players []roster.Player `json:"players"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "player-001", resp.Players[0].ID)
	assert.Equal(t, 96, resp.Players[0].FormNumber)
}

func TestShareQR(t *testing.T) {
	r := testRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/qr?text="+url.QueryEscape("https://example.com/batch/1"), nil))
	require.Equal(t, http.StatusOK, w.Code)
	_, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	assert.NoError(t, err)
}

func TestShareQRClampsSize(t *testing.T) {
	r := testRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/qr?text=hello&size=999999", nil))
	require.Equal(t, http.StatusOK, w.Code)

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), maxQRSize)
}

func newMultipart(t *testing.T, buf *bytes.Buffer, field, filename, content string) string {
	t.Helper()
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return mw.FormDataContentType()
}
