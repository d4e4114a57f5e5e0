package yuidoc

import (
	"bytes"
	"context"
	"net/url"

	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/internal/httpclient"
)

// Fetcher downloads a remote document.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Open loads input from disk, or through f when input is an http(s) URL.
// The format of a URL is chosen from its path.
func Open(ctx context.Context, input string, f Fetcher) (*Document, error) {
	if !httpclient.IsRemote(input) {
		return Load(input)
	}
	if f == nil {
		return nil, errors.Newf("cannot fetch %s: no HTTP client configured", input)
	}

	u, err := url.Parse(input)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid URL %s", input)
	}

	data, err := f.Fetch(ctx, input)
	if err != nil {
		return nil, err
	}

	doc, err := Decode(bytes.NewReader(data), FormatFromPath(u.Path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", input)
	}
	return doc, nil
}
