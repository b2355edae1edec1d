package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aiagenz/donate/internal/donation"
	"github.com/aiagenz/donate/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForms(t *testing.T) *service.FormStore {
	t.Helper()
	catalog, err := donation.NewCatalog(
		[]donation.Duration{donation.Month, donation.OneTime},
		map[donation.Duration][]int64{
			donation.Month:   {500, 1000},
			donation.OneTime: {100, 500},
		},
		nil,
	)
	require.NoError(t, err)
	return service.NewFormStore(catalog, donation.Selection{Duration: donation.Month}, time.Minute)
}

func newEventsServer(t *testing.T, forms *service.FormStore) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/api/donate/forms/{id}/events", NewEventsHandler(forms, []string{"https://www.example.org"}).Handle)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, id string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/donate/forms/" + id + "/events"
}

func readView(t *testing.T, conn *websocket.Conn) donation.View {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var v donation.View
	require.NoError(t, conn.ReadJSON(&v))
	return v
}

func TestEventsStreamViews(t *testing.T) {
	forms := newForms(t)
	srv := newEventsServer(t, forms)
	id, _, err := forms.Open()
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, id), nil)
	require.NoError(t, err)
	defer conn.Close()

	first := readView(t, conn)
	assert.Equal(t, int64(500), first.Selection.Amount)

	_, err = forms.Update(id, func(f *donation.Form) error { return f.SelectAmount(1000) })
	require.NoError(t, err)
	assert.Equal(t, int64(1000), readView(t, conn).Selection.Amount)

	_, err = forms.Update(id, func(f *donation.Form) error {
		f.Dispatch(donation.Succeeded())
		return nil
	})
	require.NoError(t, err)
	v := readView(t, conn)
	assert.Equal(t, donation.StateSuccess, v.State)
	assert.True(t, v.Resolved)

	require.NoError(t, forms.Close(id))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestEventsUnknownForm(t *testing.T) {
	srv := newEventsServer(t, newForms(t))

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "missing"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEventsRejectsForeignOrigin(t *testing.T) {
	forms := newForms(t)
	srv := newEventsServer(t, forms)
	id, _, err := forms.Open()
	require.NoError(t, err)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, id), http.Header{"Origin": {"https://evil.example.com"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, id), http.Header{"Origin": {"https://www.example.org"}})
	require.NoError(t, err)
	conn.Close()
}
