package yuidoc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/dtsgen/internal/httpclient"
)

func TestOpenLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(widgetJSON), 0644))

	doc, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ns.Widget"}, doc.ClassNames())
}

func TestOpenURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/docs/data.json":
			w.Write([]byte(widgetJSON))
		case "/docs/data.yaml":
			w.Write([]byte("classes:\n  Container:\n    name: Container\n"))
		case "/docs/broken.json":
			w.Write([]byte("{"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := httpclient.New(httpclient.Options{Timeout: 5 * time.Second, AllowPrivate: true})
	ctx := context.Background()

	doc, err := Open(ctx, server.URL+"/docs/data.json", client)
	require.NoError(t, err)
	assert.Equal(t, "2.14.1", doc.Project.Version)

	doc, err = Open(ctx, server.URL+"/docs/data.yaml?v=2", client)
	require.NoError(t, err)
	assert.Equal(t, []string{"Container"}, doc.ClassNames())

	_, err = Open(ctx, server.URL+"/docs/broken.json", client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")

	_, err = Open(ctx, server.URL+"/docs/missing.json", client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestOpenURLWithoutFetcher(t *testing.T) {
	_, err := Open(context.Background(), "https://api.emberjs.com/data.json", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no HTTP client")
}
