package cart

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anitasharma/craftsbyanita/internal/models"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cartClient replays session cookies across calls, the way a browser would.
type cartClient struct {
	provider *Provider
	cookies  []*http.Cookie
}

func newCartClient() *cartClient {
	return &cartClient{
		provider: &Provider{SessionStore: sessions.NewCookieStore([]byte("test-session-key"))},
	}
}

func (c *cartClient) request() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range c.cookies {
		r.AddCookie(cookie)
	}
	return r
}

func (c *cartClient) do(t *testing.T, fn func(w http.ResponseWriter, r *http.Request) error) {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, fn(w, c.request()))
	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
}

func saree() models.CartItem {
	return models.CartItem{ItemID: 1, Name: "Handwoven Silk Saree", UnitPrice: 18000, Quantity: 1}
}

func diyaSet() models.CartItem {
	return models.CartItem{ItemID: 2, Name: "Brass Diya Set", UnitPrice: 4000, Quantity: 1}
}

func TestCart_EmptyByDefault(t *testing.T) {
	c := newCartClient()

	assert.Empty(t, c.provider.Items(c.request()))
	assert.Zero(t, c.provider.TotalPrice(c.request()))
	assert.Zero(t, c.provider.Count(c.request()))
}

func TestCart_AddAndTotal(t *testing.T) {
	c := newCartClient()

	c.do(t, func(w http.ResponseWriter, r *http.Request) error { return c.provider.Add(w, r, saree()) })
	c.do(t, func(w http.ResponseWriter, r *http.Request) error { return c.provider.Add(w, r, diyaSet()) })

	items := c.provider.Items(c.request())
	require.Len(t, items, 2)
	assert.Equal(t, 22000.0, c.provider.TotalPrice(c.request()))
	assert.Equal(t, 2, c.provider.Count(c.request()))
}

func TestCart_AddMergesQuantity(t *testing.T) {
	c := newCartClient()

	c.do(t, func(w http.ResponseWriter, r *http.Request) error { return c.provider.Add(w, r, saree()) })
	c.do(t, func(w http.ResponseWriter, r *http.Request) error { return c.provider.Add(w, r, saree()) })

	items := c.provider.Items(c.request())
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 36000.0, c.provider.TotalPrice(c.request()))
}

func TestCart_AddClampsQuantity(t *testing.T) {
	c := newCartClient()

	item := saree()
	item.Quantity = 0
	c.do(t, func(w http.ResponseWriter, r *http.Request) error { return c.provider.Add(w, r, item) })

	items := c.provider.Items(c.request())
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCart_Remove(t *testing.T) {
	c := newCartClient()

	c.do(t, func(w http.ResponseWriter, r *http.Request) error { return c.provider.Add(w, r, saree()) })
	c.do(t, func(w http.ResponseWriter, r *http.Request) error { return c.provider.Add(w, r, diyaSet()) })
	c.do(t, func(w http.ResponseWriter, r *http.Request) error { return c.provider.Remove(w, r, 1) })

	items := c.provider.Items(c.request())
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ItemID)
}

func TestCart_Clear(t *testing.T) {
	c := newCartClient()

	c.do(t, func(w http.ResponseWriter, r *http.Request) error { return c.provider.Add(w, r, saree()) })
	c.do(t, func(w http.ResponseWriter, r *http.Request) error { return c.provider.Clear(w, r) })

	assert.Empty(t, c.provider.Items(c.request()))
}
