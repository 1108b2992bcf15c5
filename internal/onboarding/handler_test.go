package onboarding

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newTestClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t)
	tokens := TokenService{Secret: []byte("test"), Issuer: "goalboom", Duration: time.Hour}

	r := gin.New()
	NewHandler(svc, tokens).RegisterRoutes(r.Group("/onboarding"))
	return &client{t: t, router: r}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *client) view(w *httptest.ResponseRecorder) View {
	c.t.Helper()
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	var v View
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func (c *client) start() {
	w := c.do(http.MethodPost, "/onboarding", nil)
	require.Equal(c.t, http.StatusCreated, w.Code)

	var resp struct {
		Session View   `json:"session"`
		Token   string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(c.t, resp.Token)
	assert.Equal(c.t, StateIntro, resp.Session.State)
	c.token = resp.Token
}

func TestHandlerRequiresToken(t *testing.T) {
	c := newTestClient(t)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/onboarding", nil).Code)

	c.token = "garbage"
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/onboarding", nil).Code)
}

func TestHandlerFullFlow(t *testing.T) {
	c := newTestClient(t)
	c.start()

	v := c.view(c.do(http.MethodPost, "/onboarding/slides/first", nil))
	assert.Equal(t, 0, v.Slide.Index)
	assert.Equal(t, "Welcome", v.Slide.Caption)

	c.view(c.do(http.MethodPost, "/onboarding/intro/done", nil))

	w := c.do(http.MethodPost, "/onboarding/region", map[string]string{"region": "Asia"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	v = c.view(c.do(http.MethodPost, "/onboarding/region", map[string]string{"region": "Asia", "country": "Japan"}))
	assert.Equal(t, StateGenderPick, v.State)

	v = c.view(c.do(http.MethodPost, "/onboarding/gender", map[string]string{"gender": "woman"}))
	assert.Equal(t, StateOccupationPick, v.State)

	v = c.view(c.do(http.MethodPost, "/onboarding/occupation", map[string]string{"occupation": "scientist"}))
	assert.Equal(t, StateHeroResults, v.State)
	require.Len(t, v.Results, 1)
	assert.Equal(t, "Ruby Hirose", v.Results[0].Name)

	v = c.view(c.do(http.MethodGet, "/onboarding/results", nil))
	assert.Len(t, v.Results, 1)

	v = c.view(c.do(http.MethodPost, "/onboarding/heroes/Ruby%20Hirose", nil))
	assert.Equal(t, StateHeroDetail, v.State)
	require.NotNil(t, v.Hero)

	v = c.view(c.do(http.MethodPost, "/onboarding/back", nil))
	assert.Equal(t, StateHeroResults, v.State)

	v = c.view(c.do(http.MethodPost, "/onboarding/restart", nil))
	assert.Equal(t, StateIntro, v.State)
}

func TestHandlerRejectsOutOfOrderSteps(t *testing.T) {
	c := newTestClient(t)
	c.start()

	w := c.do(http.MethodPost, "/onboarding/occupation", map[string]string{"occupation": "Doctor"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = c.do(http.MethodPost, "/onboarding/back", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = c.do(http.MethodPost, "/onboarding/slides/sideways", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerUnknownSession(t *testing.T) {
	c := newTestClient(t)
	tokens := TokenService{Secret: []byte("test"), Issuer: "goalboom", Duration: time.Hour}
	tok, _, err := tokens.Sign("does-not-exist")
	require.NoError(t, err)
	c.token = tok

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/onboarding", nil).Code)
}
