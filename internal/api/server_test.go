package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/lox/skylog/internal/api"
	"github.com/lox/skylog/internal/auth"
	"github.com/lox/skylog/internal/dropzone"
	"github.com/lox/skylog/internal/logbook"
	"github.com/lox/skylog/internal/store"
	"github.com/lox/skylog/internal/weather"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	handler http.Handler
	store   *store.Store
	clock   *clockwork.FakeClock
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop().Sugar()
	st := store.New(db, logger)
	require.NoError(t, st.Migrate())

	clock := clockwork.NewFakeClockAt(t0)
	dir := dropzone.NewDirectory()
	refresher := dropzone.NewRefresher(dir, nil,
		dropzone.WithClock(clock),
		dropzone.WithRunRecorder(st),
		dropzone.WithSynthetic(weather.NewSynthetic(rand.New(rand.NewPCG(1, 2)))),
	)

	srv := api.NewServer(api.Config{
		Store:     st,
		Auth:      auth.NewService(st, auth.WithClock(clock), auth.WithBcryptCost(bcrypt.MinCost)),
		Logbook:   logbook.New(st, clock),
		Directory: dir,
		Refresher: refresher,
		Clock:     clock,
		Logger:    logger,
	}, "0")
	return &testEnv{handler: srv.Handler(), store: st, clock: clock}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// signup creates an account and returns a session token for it.
func (e *testEnv) signup(t *testing.T, license string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Jumper " + license,
		"email":    license + "@example.com",
		"password": "secret",
		"license":  license,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"license":  license,
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[struct {
		AccessToken string `json:"accessToken"`
	}](t, w).AccessToken
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Status           string `json:"status"`
		Database         string `json:"database"`
		MigrationVersion int    `json:"migrationVersion"`
	}](t, w)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Database)
	assert.Equal(t, 4, body.MigrationVersion)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)

	w := env.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)

	signup := map[string]string{"name": "Alice", "email": "alice@example.com", "password": "pw", "license": "FFP-1"}
	w := env.do(t, http.MethodPost, "/api/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, w.Code)
	acc := decode[struct {
		Account struct {
			License    string `json:"license"`
			TotalJumps int    `json:"totalJumps"`
		} `json:"account"`
	}](t, w).Account
	assert.Equal(t, "FFP-1", acc.License)
	assert.Zero(t, acc.TotalJumps)

	w = env.do(t, http.MethodPost, "/api/auth/signup", "", signup)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"name": "Bob"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"license": "FFP-1", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"license": "FFP-404", "password": "pw"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"license": "FFP-1", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	sess := decode[struct {
		AccessToken string `json:"accessToken"`
		ExpiresAt   string `json:"expiresAt"`
	}](t, w)
	require.NotEmpty(t, sess.AccessToken)
	assert.Equal(t, t0.Add(auth.DefaultSessionTTL).Format(time.RFC3339), sess.ExpiresAt)

	w = env.do(t, http.MethodGet, "/api/profile", sess.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/signout", sess.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/profile", sess.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)

	routes := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/profile"},
		{http.MethodGet, "/api/jumps"},
		{http.MethodPost, "/api/jumps"},
		{http.MethodDelete, "/api/jumps/abc"},
		{http.MethodGet, "/api/favorites"},
		{http.MethodPost, "/api/favorites/1"},
		{http.MethodDelete, "/api/favorites/1"},
		{http.MethodPost, "/api/scan"},
		{http.MethodGet, "/api/scans/abc"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := env.do(t, rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			w = env.do(t, rt.method, rt.path, "not-a-token", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	w := env.do(t, http.MethodPost, "/api/auth/signout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type jumpJSON struct {
	ID         string `json:"id"`
	JumpNumber int    `json:"jumpNumber"`
	Date       string `json:"date"`
	Location   string `json:"location"`
	CanopySize *int   `json:"canopySize"`
	Notes      string `json:"freefallNotes"`
}

func TestJumps(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)
	token := env.signup(t, "FFP-2")

	first := env.do(t, http.MethodPost, "/api/jumps", token, map[string]any{
		"date": "2025-05-01", "location": "Tallard", "aircraft": "Pilatus Porter",
		"altitude": 4000, "canopySize": 190, "freefallNotes": "<b>Stable</b> exit",
	})
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	j1 := decode[struct{ Jump jumpJSON }](t, first).Jump
	assert.Equal(t, 1, j1.JumpNumber)
	assert.Equal(t, "Stable exit", j1.Notes)
	require.NotNil(t, j1.CanopySize)
	assert.Equal(t, 190, *j1.CanopySize)

	second := env.do(t, http.MethodPost, "/api/jumps", token, map[string]any{
		"date": "2025-05-02", "location": "Gap", "aircraft": "Twin Otter", "altitude": 4200,
	})
	require.Equal(t, http.StatusCreated, second.Code)
	j2 := decode[struct{ Jump jumpJSON }](t, second).Jump
	assert.Equal(t, 2, j2.JumpNumber)
	assert.Nil(t, j2.CanopySize)

	bad := env.do(t, http.MethodPost, "/api/jumps", token, map[string]any{
		"date": "01/05/2025", "location": "Gap", "aircraft": "Twin Otter", "altitude": 4200,
	})
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	w := env.do(t, http.MethodGet, "/api/jumps", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct{ Jumps []jumpJSON }](t, w).Jumps
	require.Len(t, list, 2)
	assert.Equal(t, "Gap", list[0].Location)
	assert.Equal(t, "Tallard", list[1].Location)

	// Another jumper can neither see nor delete these.
	other := env.signup(t, "FFP-3")
	w = env.do(t, http.MethodGet, "/api/jumps", other, nil)
	assert.Empty(t, decode[struct{ Jumps []jumpJSON }](t, w).Jumps)
	w = env.do(t, http.MethodDelete, "/api/jumps/"+j1.ID, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/jumps/"+j1.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodDelete, "/api/jumps/"+j1.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[struct {
		Account struct {
			TotalJumps int `json:"totalJumps"`
		} `json:"account"`
		Stats struct {
			TotalJumps       int    `json:"totalJumps"`
			TotalAltitude    int    `json:"totalAltitude"`
			TotalFreefall    string `json:"totalFreefall"`
			FavoriteDropzone string `json:"favoriteDropzone"`
		} `json:"stats"`
	}](t, w)
	assert.Equal(t, 1, profile.Account.TotalJumps)
	assert.Equal(t, 1, profile.Stats.TotalJumps)
	assert.Equal(t, 4200, profile.Stats.TotalAltitude)
	assert.Equal(t, "1m 10s", profile.Stats.TotalFreefall)
	assert.Equal(t, "Gap", profile.Stats.FavoriteDropzone)

	// Numbers keep counting up after a delete.
	third := env.do(t, http.MethodPost, "/api/jumps", token, map[string]any{
		"date": "2025-05-03", "location": "Gap", "aircraft": "Twin Otter", "altitude": 4200,
	})
	require.Equal(t, http.StatusCreated, third.Code)
	assert.Equal(t, 3, decode[struct{ Jump jumpJSON }](t, third).Jump.JumpNumber)
}

type dropzoneJSON struct {
	ID       string `json:"id"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Favorite bool   `json:"favorite"`
	Weather  *struct {
		Synthetic bool `json:"synthetic"`
	} `json:"weather"`
	Safety *struct {
		Level string `json:"level"`
		Score int    `json:"score"`
		Label string `json:"label"`
	} `json:"safety"`
}

type dropzoneList struct {
	Dropzones   []dropzoneJSON `json:"dropzones"`
	Count       int            `json:"count"`
	LastUpdated *time.Time     `json:"lastUpdated"`
}

func TestDropzones(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)

	w := env.do(t, http.MethodGet, "/api/dropzones", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	before := decode[dropzoneList](t, w)
	assert.Equal(t, 50, before.Count)
	assert.Nil(t, before.LastUpdated)
	for _, z := range before.Dropzones {
		assert.Nil(t, z.Safety, "zone %s has no weather yet", z.ID)
	}

	w = env.do(t, http.MethodPost, "/api/dropzones/refresh", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[struct {
		Zones     int            `json:"zones"`
		Synthetic int            `json:"synthetic"`
		Failed    int            `json:"failed"`
		Levels    map[string]int `json:"levels"`
	}](t, w)
	assert.Equal(t, 50, sum.Zones)
	assert.Equal(t, 50, sum.Synthetic)
	assert.Zero(t, sum.Failed)
	total := 0
	for _, n := range sum.Levels {
		total += n
	}
	assert.Equal(t, 50, total)

	w = env.do(t, http.MethodGet, "/api/dropzones", "", nil)
	after := decode[dropzoneList](t, w)
	require.NotNil(t, after.LastUpdated)
	for _, z := range after.Dropzones {
		require.NotNil(t, z.Safety)
		require.NotNil(t, z.Weather)
		assert.True(t, z.Weather.Synthetic)
		assert.NotEmpty(t, z.Safety.Label)
	}

	w = env.do(t, http.MethodGet, "/api/dropzones/2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	one := decode[struct{ Dropzone dropzoneJSON }](t, w).Dropzone
	assert.Equal(t, "Tallard", one.City)
	assert.NotNil(t, one.Safety)

	w = env.do(t, http.MethodGet, "/api/dropzones/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/dropzones/refresh/runs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	runs := decode[struct {
		Runs []struct {
			Reason    string `json:"reason"`
			Synthetic int    `json:"synthetic"`
			Success   bool   `json:"success"`
		} `json:"runs"`
	}](t, w).Runs
	require.Len(t, runs, 1)
	assert.Equal(t, "manual", runs[0].Reason)
	assert.Equal(t, 50, runs[0].Synthetic)
	assert.True(t, runs[0].Success)

	w = env.do(t, http.MethodGet, "/api/dropzones/refresh/runs?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDropzones_Filters(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)

	w := env.do(t, http.MethodGet, "/api/dropzones/regions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[struct{ Regions []string }](t, w).Regions, 16)

	w = env.do(t, http.MethodGet, "/api/dropzones?q=tallard", "", nil)
	list := decode[dropzoneList](t, w)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "2", list.Dropzones[0].ID)

	w = env.do(t, http.MethodGet, "/api/dropzones?region=Bretagne&status=all", "", nil)
	for _, z := range decode[dropzoneList](t, w).Dropzones {
		assert.Equal(t, "Bretagne", z.Region)
	}

	w = env.do(t, http.MethodGet, "/api/dropzones?minLevel=superb", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Without weather nothing qualifies for a level filter.
	w = env.do(t, http.MethodGet, "/api/dropzones?minLevel=dangerous", "", nil)
	assert.Zero(t, decode[dropzoneList](t, w).Count)
}

func TestFavorites(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)
	token := env.signup(t, "FFP-4")

	w := env.do(t, http.MethodPost, "/api/favorites/7", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"7"}, decode[struct{ Favorites []string }](t, w).Favorites)

	w = env.do(t, http.MethodPost, "/api/favorites/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/dropzones", token, nil)
	list := decode[dropzoneList](t, w)
	require.NotEmpty(t, list.Dropzones)
	assert.Equal(t, "7", list.Dropzones[0].ID)
	assert.True(t, list.Dropzones[0].Favorite)
	assert.False(t, list.Dropzones[1].Favorite)

	// Anonymous callers see no favourites.
	w = env.do(t, http.MethodGet, "/api/dropzones/7", "", nil)
	assert.False(t, decode[struct{ Dropzone dropzoneJSON }](t, w).Dropzone.Favorite)

	w = env.do(t, http.MethodDelete, "/api/favorites/7", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[struct{ Favorites []string }](t, w).Favorites)
}

func TestSafetyEndpoint(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantLevel string
		wantScore int
		wantLabel string
	}{
		{"calm defaults", "", http.StatusOK, "excellent", 100, "Excellent"},
		{"breezy", "?wind=20&visibility=10%20km", http.StatusOK, "excellent", 85, "Excellent"},
		{"gusty", "?wind=26&visibility=10%20km", http.StatusOK, "good", 70, "Bon"},
		{"rain and haze", "?wind=30&visibility=4%20km&conditions=Pluie%20l%C3%A9g%C3%A8re", http.StatusOK, "dangerous", 25, "Dangereux"},
		{"storm", "?conditions=Orage", http.StatusOK, "poor", 40, "Difficile"},
		{"drizzle", "?conditions=Bruine", http.StatusOK, "good", 80, "Bon"},
		{"bad wind", "?wind=fast", http.StatusBadRequest, "", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/api/safety"+tt.query, "", nil)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantCode != http.StatusOK {
				return
			}
			got := decode[struct {
				Level string `json:"level"`
				Score int    `json:"score"`
				Label string `json:"label"`
			}](t, w)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

func TestWeatherEndpoint(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)

	w := env.do(t, http.MethodGet, "/api/weather?lat=45.1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/weather?lat=45.1885&lon=5.7245", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Weather struct {
			Synthetic bool `json:"synthetic"`
		} `json:"weather"`
		Safety struct {
			Level string `json:"level"`
		} `json:"safety"`
	}](t, w)
	assert.True(t, got.Weather.Synthetic)
	assert.NotEmpty(t, got.Safety.Level)
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func (e *testEnv) upload(t *testing.T, token, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/scan", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func TestScan(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)
	token := env.signup(t, "FFP-5")

	type scanJSON struct {
		ImageURL    string `json:"imageUrl"`
		Duplicate   bool   `json:"duplicate"`
		ScannedData []struct {
			Location   string  `json:"location"`
			Altitude   int     `json:"altitude"`
			Confidence float64 `json:"confidence"`
		} `json:"scannedData"`
	}

	w := env.upload(t, token, "page.png", pngBytes)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[scanJSON](t, w)
	assert.False(t, first.Duplicate)
	require.Len(t, first.ScannedData, 1)
	assert.Equal(t, "Bourg-en-Bresse", first.ScannedData[0].Location)
	assert.Equal(t, 4000, first.ScannedData[0].Altitude)
	assert.InDelta(t, 0.85, first.ScannedData[0].Confidence, 1e-9)

	w = env.do(t, http.MethodGet, first.ImageURL, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, pngBytes, w.Body.Bytes())

	w = env.upload(t, token, "again.png", pngBytes)
	require.Equal(t, http.StatusOK, w.Code)
	again := decode[scanJSON](t, w)
	assert.True(t, again.Duplicate)
	assert.Equal(t, first.ImageURL, again.ImageURL)

	w = env.upload(t, token, "notes.txt", []byte("just some text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	other := env.signup(t, "FFP-6")
	w = env.do(t, http.MethodGet, first.ImageURL, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	env := setupTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/jumps", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
