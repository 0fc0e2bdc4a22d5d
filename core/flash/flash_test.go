package flash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AddPop(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "a", Message{Category: Success, Text: "one"}))
	require.NoError(t, s.Add(ctx, "a", Message{Category: Warning, Text: "two"}))
	require.NoError(t, s.Add(ctx, "b", Message{Category: Info, Text: "other"}))

	msgs, err := s.Pop(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []Message{{Success, "one"}, {Warning, "two"}}, msgs)

	msgs, err = s.Pop(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	msgs, _ = s.Pop(ctx, "b")
	assert.Len(t, msgs, 1)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(time.Millisecond)
	require.NoError(t, s.Add(context.Background(), "a", Message{Category: Info, Text: "gone"}))
	time.Sleep(5 * time.Millisecond)

	msgs, err := s.Pop(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestNewStore_FallsBackToMemory(t *testing.T) {
	_, ok := NewStore(nil).(*MemoryStore)
	assert.True(t, ok)
}

func TestMiddleware_FlashSurvivesRedirect(t *testing.T) {
	f := &Flasher{Store: NewMemoryStore(time.Minute)}
	e := echo.New()
	e.Use(Middleware())
	e.GET("/set", func(c echo.Context) error {
		f.Add(c, Success, "saved")
		return c.Redirect(http.StatusFound, "/show")
	})
	e.GET("/show", func(c echo.Context) error {
		return c.JSON(http.StatusOK, f.Pop(c))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/set", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)

	show := func() string {
		req := httptest.NewRequest(http.MethodGet, "/show", nil)
		req.AddCookie(cookies[0])
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Body.String()
	}
	assert.JSONEq(t, `[{"category":"success","text":"saved"}]`, show())
	assert.JSONEq(t, `null`, show())

	// a different browser session sees nothing
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/show", nil))
	assert.JSONEq(t, `null`, rec.Body.String())
}
