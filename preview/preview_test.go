package preview

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billlayne/mailcomposer/bulk"
)

const doc = `<!DOCTYPE html><html><head><title>T</title></head><body class="email"><p>Hello <b>Jane</b></p></body></html>`

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDocumentRoutes(t *testing.T) {
	s := NewServer(nil)
	h := s.Handler()

	assert.Equal(t, http.StatusNotFound, get(t, h, "/").Code)

	s.Set(Page{Subject: "Hi", HTML: doc})
	rec := get(t, h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, doc, rec.Body.String())

	rec = get(t, h, "/?dark=1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="email dark-mode-preview"`)

	rec = get(t, h, "/text")
	assert.Equal(t, "Hello Jane", rec.Body.String())
}

func TestSizeAndRows(t *testing.T) {
	s := NewServer(nil)
	h := s.Handler()
	s.Set(Page{Subject: "Hi", HTML: doc, Rows: []bulk.Row{{Email: "a@example.com", HTMLBody: "<p>Ann</p>"}}})

	var got sizeResponse
	require.NoError(t, json.Unmarshal(get(t, h, "/size").Body.Bytes(), &got))
	assert.Equal(t, "Hi", got.Subject)
	assert.Equal(t, "ok", string(got.Level))
	assert.Equal(t, 1, got.Rows)
	assert.Greater(t, got.KB, 0.0)

	rec := get(t, h, "/rows/0")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>Ann</p>", rec.Body.String())
	assert.Equal(t, http.StatusNotFound, get(t, h, "/rows/1").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/rows/x").Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := NewServer(nil)
	s.Set(Page{HTML: doc})

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan net.Addr, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(ctx, "127.0.0.1:0", func(a net.Addr) { addrCh <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case err := <-errCh:
		t.Fatalf("serve failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr.String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, doc, string(body))

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
