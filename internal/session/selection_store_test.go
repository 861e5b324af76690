package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-storefront/internal/models"
)

func newTestStore() (*SelectionStore, sessions.Store) {
	cookieStore := sessions.NewCookieStore([]byte("test-secret"))
	return NewSelectionStore(cookieStore), cookieStore
}

// carryCookies moves the cookies written by a save onto a fresh request,
// simulating the page transition from event detail to cart.
func carryCookies(w *httptest.ResponseRecorder, r *http.Request) {
	for _, cookie := range w.Result().Cookies() {
		r.AddCookie(cookie)
	}
}

func TestSelectionStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore()
	bounds := models.DefaultQuantityBounds()

	selection := models.NewTicketSelection().
		SetQuantity(101, 2, bounds).
		SetQuantity(102, 0, bounds).
		SetQuantity(205, 7, bounds)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/events/7/selection", nil)
	require.NoError(t, store.Save(r, w, selection))

	next := httptest.NewRequest(http.MethodGet, "/cart", nil)
	carryCookies(w, next)

	loaded := store.Load(next)
	assert.Equal(t, selection, loaded)
	// Zero-quantity entries survive the round trip as legal members.
	qty, ok := loaded[102]
	assert.True(t, ok)
	assert.Equal(t, 0, qty)
}

func TestSelectionStore_SecondSaveReplaces(t *testing.T) {
	store, _ := newTestStore()
	bounds := models.DefaultQuantityBounds()

	first := models.NewTicketSelection().SetQuantity(101, 2, bounds)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, store.Save(r, w, first))

	second := models.NewTicketSelection().SetQuantity(300, 1, bounds)
	r2 := httptest.NewRequest(http.MethodPost, "/", nil)
	carryCookies(w, r2)
	w2 := httptest.NewRecorder()
	require.NoError(t, store.Save(r2, w2, second))

	r3 := httptest.NewRequest(http.MethodGet, "/cart", nil)
	carryCookies(w2, r3)

	loaded := store.Load(r3)
	assert.Equal(t, second, loaded, "a save must fully replace, never merge")
	_, ok := loaded[101]
	assert.False(t, ok)
}

func TestSelectionStore_LoadAbsent(t *testing.T) {
	store, _ := newTestStore()

	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	loaded := store.Load(r)

	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestSelectionStore_LoadCorrupt(t *testing.T) {
	store, cookieStore := newTestStore()

	corruptValues := []interface{}{
		"{not valid json",
		"[]",
		42,
		"null",
	}

	for _, corrupt := range corruptValues {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		sess, _ := cookieStore.Get(r, SessionName)
		sess.Values[SelectionKey] = corrupt
		require.NoError(t, sess.Save(r, w))

		next := httptest.NewRequest(http.MethodGet, "/cart", nil)
		carryCookies(w, next)

		loaded := store.Load(next)
		assert.NotNil(t, loaded, "corrupt value %v must degrade to an empty selection", corrupt)
		assert.Empty(t, loaded)
	}
}

func TestSelectionStore_LoadTamperedCookie(t *testing.T) {
	store, _ := newTestStore()

	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.AddCookie(&http.Cookie{Name: SessionName, Value: "garbage-not-a-session"})

	loaded := store.Load(r)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestSelectionStore_Clear(t *testing.T) {
	store, _ := newTestStore()
	bounds := models.DefaultQuantityBounds()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, store.Save(r, w, models.NewTicketSelection().SetQuantity(101, 2, bounds)))

	r2 := httptest.NewRequest(http.MethodPost, "/cart/clear", nil)
	carryCookies(w, r2)
	w2 := httptest.NewRecorder()
	require.NoError(t, store.Clear(r2, w2))

	r3 := httptest.NewRequest(http.MethodGet, "/cart", nil)
	carryCookies(w2, r3)
	assert.Empty(t, store.Load(r3))
}
