package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lysyi3m/mt-api/internal/catalog"
	"github.com/lysyi3m/mt-api/internal/config"
	"github.com/lysyi3m/mt-api/internal/database"
)

const refTime = 1700000000

func newTestServer(t *testing.T, debugAll bool) (*gin.Engine, *database.DB) {
	t.Helper()

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, _, err = database.RunMigrations(db)
	require.NoError(t, err)

	settings := config.Defaults()
	store := database.NewCatalogStore(db, database.NewBreaker(t.Name(), 5, settings.GetBreakerCooldown()))
	handler := NewHandler(catalog.NewPipeline(store, settings), store, settings, debugAll, "test")

	return NewServer(handler), db
}

func seedVideos(t *testing.T, db *database.DB) {
	t.Helper()

	for i, title := range []string{"Tagesschau", "Brennpunkt", "Expedition"} {
		_, err := db.Exec(`INSERT INTO video (channel, theme, title, url, date_unix, duration) VALUES ('ARD', 'News', ?, 'http://example.org', ?, 900)`,
			title, refTime-int64(100*(i+1)))
		require.NoError(t, err)
	}
}

func envelope(software string, mode int) string {
	return fmt.Sprintf(`{"software": %q, "vMajor": 0, "vMinor": 3, "isBeta": false, "vBeta": 0, "mode": %d,
		"data": {"channel": "ARD", "timeMode": 1, "epoch": 1, "duration": 0, "limit": 2, "start": 0, "refTime": %d}}`,
		software, mode, refTime)
}

func postEnvelope(r *gin.Engine, host, body string) *httptest.ResponseRecorder {
	form := url.Values{"data1": {body}}
	req := httptest.NewRequest(http.MethodPost, "/?mode=api", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if host != "" {
		req.Host = host
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestEnvelopeListVideos(t *testing.T) {
	r, db := newTestServer(t, false)
	seedVideos(t, db)

	w := postEnvelope(r, "", envelope("Neutrino Mediathek", 5))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	out := decodeBody(t, w)
	assert.Equal(t, float64(0), out["error"])

	head := out["head"].(map[string]any)
	assert.Equal(t, float64(0), head["start"])
	assert.Equal(t, float64(1), head["end"])
	assert.Equal(t, float64(2), head["rows"])
	assert.Equal(t, float64(3), head["total"])
	assert.Equal(t, float64(refTime), head["refTime"])

	entries := out["entry"].([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "Tagesschau", entries[0].(map[string]any)["title"])
}

func postRaw(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/?mode=api", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEnvelopeMalformedFormField(t *testing.T) {
	r, db := newTestServer(t, false)
	seedVideos(t, db)

	body := "data1=" + url.QueryEscape(envelope("Neutrino Mediathek", 5)) + "&note=100%"
	out := decodeBody(t, postRaw(r, body))

	assert.Equal(t, float64(0), out["error"])
	assert.Equal(t, float64(3), out["head"].(map[string]any)["total"])
}

func TestEnvelopeRawPercentInData(t *testing.T) {
	r, db := newTestServer(t, false)
	seedVideos(t, db)

	escaped := url.QueryEscape(envelope("Neutrino Mediathek", 5))
	escaped = strings.Replace(escaped, "ARD", "ARD%", 1)
	out := decodeBody(t, postRaw(r, "data1="+escaped))

	assert.Equal(t, float64(0), out["error"])
	head := out["head"].(map[string]any)
	assert.Equal(t, float64(3), head["total"])
	assert.Equal(t, float64(2), head["rows"])
}

func TestEnvelopeErrorsAreInBand(t *testing.T) {
	r, _ := newTestServer(t, false)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"signature", envelope("neutrino mediathek", 5), "The given signature is 'neutrino mediathek'"},
		{"not available", envelope("Neutrino Mediathek", 2), "Function not yet available."},
		{"unknown", envelope("Neutrino Mediathek", 99), "Unknown function."},
		{"invalid json", "{", "Error parsing json data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postEnvelope(r, "", tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			out := decodeBody(t, w)
			assert.Equal(t, float64(1), out["error"])
			assert.Equal(t, []any{}, out["head"])
			assert.Contains(t, out["entry"], tt.message)
		})
	}
}

func TestEnvelopeMissingData(t *testing.T) {
	r, _ := newTestServer(t, false)

	w := get(r, "/?mode=api")

	out := decodeBody(t, w)
	assert.Equal(t, float64(1), out["error"])
	assert.Contains(t, out["entry"], "Error parsing json data")
}

func TestEnvelopeBodyTooLarge(t *testing.T) {
	r, _ := newTestServer(t, false)

	w := postEnvelope(r, "", strings.Repeat("x", maxPostSize+1))

	out := decodeBody(t, w)
	assert.Equal(t, float64(1), out["error"])
}

func TestDirectQueries(t *testing.T) {
	r, db := newTestServer(t, false)

	_, err := db.Exec(`INSERT INTO channelinfo (channel, count, latest, oldest) VALUES ('ARD', 3, 2, 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO video (channel, theme, title, url) VALUES ('ARD', 'Livestream', 'Das Erste Livestream', 'http://live')`)
	require.NoError(t, err)

	out := decodeBody(t, get(r, "/?mode=api&sub=listChannels"))
	assert.Equal(t, map[string]any{"rows": float64(1)}, out["head"])

	out = decodeBody(t, get(r, "/?mode=API&sub=LISTLIVESTREAM"))
	entries := out["entry"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "Das Erste", entries[0].(map[string]any)["title"])

	out = decodeBody(t, get(r, "/?mode=api&sub=info"))
	assert.Equal(t, []any{}, out["head"])
	info := out["entry"].([]any)
	require.Len(t, info, 1)
	assert.Equal(t, "mt-api", info[0].(map[string]any)["api"])
}

func TestPages(t *testing.T) {
	r, _ := newTestServer(t, false)

	tests := []struct {
		target string
		want   string
	}{
		{"/", "Mediathek catalog API"},
		{"/?mode=index", "Mediathek catalog API"},
		{"/?mode=403page", "Verwehrt der Zugang dir ist."},
		{"/?mode=404page", "Verloren eine Seite du hast."},
		{"/?mode=500page", "Unbekannt der Fehler mir ist."},
		{"/?mode=nothing", "<span class='errorText3'>nothing.html</span>"},
		{"/?mode=12xpage", "<div class=\"errorNum\">12</div>"},
	}

	for _, tt := range tests {
		w := get(r, tt.target)
		assert.Equal(t, http.StatusOK, w.Code, tt.target)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", tt.target)
		assert.Contains(t, w.Body.String(), tt.want, tt.target)
	}
}

func TestErrorPageEscapesMode(t *testing.T) {
	r, _ := newTestServer(t, false)

	w := get(r, "/?mode="+url.QueryEscape("<script>alert(1)</script>"))

	assert.NotContains(t, w.Body.String(), "<script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")
}

func TestDebugHostRendersHTML(t *testing.T) {
	r, db := newTestServer(t, false)
	seedVideos(t, db)

	w := postEnvelope(r, "mt.debug.example.org", envelope("Neutrino Mediathek", 5))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "SELECT COUNT(id) FROM video WHERE (channel LIKE &#39;ARD&#39;")
	assert.Contains(t, body, "list_videos")
	assert.Contains(t, body, "Tagesschau")
}

func TestDebugAll(t *testing.T) {
	r, _ := newTestServer(t, true)

	w := get(r, "/?mode=api&sub=info")

	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "FROM version")
}

func TestHealth(t *testing.T) {
	r, db := newTestServer(t, false)
	seedVideos(t, db)

	out := decodeBody(t, get(r, "/health"))

	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, float64(3), out["videos"])
	assert.Equal(t, "test", out["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestServer(t, false)

	get(r, "/?mode=api&sub=info")
	w := get(r, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mtapi_requests_total")
}

func TestMiddleware(t *testing.T) {
	r, _ := newTestServer(t, false)

	w := get(r, "/favicon.ico")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set(requestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "abc", w.Header().Get(requestIDHeader))
}

func TestIsErrorPageMode(t *testing.T) {
	assert.True(t, isErrorPageMode("404page"))
	assert.True(t, isErrorPageMode("abcpage"))
	assert.False(t, isErrorPageMode("404pages"))
	assert.False(t, isErrorPageMode("4page"))
	assert.False(t, isErrorPageMode("pageabc"))
}
