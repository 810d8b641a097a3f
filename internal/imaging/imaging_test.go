package imaging

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t, 400, 300))
	}))
	defer srv.Close()

	p := NewProber(srv.Client())
	d, err := p.Probe(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{Width: 400, Height: 300}, d)
	assert.False(t, d.IsPortrait())
}

func TestProbe_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	p := NewProber(srv.Client())
	_, err := p.Probe(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestProbe_NotAnImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	p := NewProber(srv.Client())
	_, err := p.Probe(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestProbeAll_PreservesOrderAndFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/portrait.png":
			w.Write(pngBytes(t, 300, 500))
		case "/landscape.png":
			w.Write(pngBytes(t, 500, 300))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewProber(srv.Client())
	dims := p.ProbeAll(context.Background(), []string{
		srv.URL + "/portrait.png",
		srv.URL + "/missing.png",
		srv.URL + "/landscape.png",
	})

	require.Len(t, dims, 3)
	assert.Equal(t, Dimensions{Width: 300, Height: 500}, dims[0])
	assert.True(t, dims[0].IsPortrait())
	assert.Equal(t, Dimensions{Width: FallbackWidth, Height: FallbackHeight}, dims[1])
	assert.Equal(t, Dimensions{Width: 500, Height: 300}, dims[2])
}

func TestIsPortrait_SquareCountsAsPortrait(t *testing.T) {
	assert.True(t, Dimensions{Width: 200, Height: 200}.IsPortrait())
}
