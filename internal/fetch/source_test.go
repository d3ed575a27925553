package fetch

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSSource(t *testing.T) {
	src := &FSSource{FS: fstest.MapFS{
		"components/navbar.html": {Data: []byte("<nav></nav>")},
	}}

	data, err := src.Fetch(context.Background(), "/components/navbar.html")
	require.NoError(t, err)
	assert.Equal(t, "<nav></nav>", string(data))

	_, err = src.Fetch(context.Background(), "components/missing.css")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = src.Fetch(context.Background(), "../etc/passwd")
	assert.Error(t, err)
}

func TestFSSourceCancelled(t *testing.T) {
	src := &FSSource{FS: fstest.MapFS{"a": {Data: []byte("a")}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Fetch(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/components/navbar.css" {
			w.Write([]byte(".navbar{}"))
			return
		}
		http.NotFound(w, r)
	}))
	defer ts.Close()

	src, err := NewHTTPSource(ts.URL+"/components", ts.Client())
	require.NoError(t, err)

	data, err := src.Fetch(context.Background(), "navbar.css")
	require.NoError(t, err)
	assert.Equal(t, ".navbar{}", string(data))

	_, err = src.Fetch(context.Background(), "navbar.js")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestSub(t *testing.T) {
	src := Sub(&FSSource{FS: fstest.MapFS{
		"components/footer.html": {Data: []byte("<footer></footer>")},
	}}, "/components/")

	data, err := src.Fetch(context.Background(), "footer.html")
	require.NoError(t, err)
	assert.Equal(t, "<footer></footer>", string(data))
}
