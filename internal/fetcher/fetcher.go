package fetcher

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const retryBase = 250 * time.Millisecond

// Fetcher builds http requests and fetches feed files via http. Transient
// failures (network errors, 5xx responses) are retried with Fibonacci
// backoff.
type Fetcher struct {
	client     *http.Client
	userAgent  string
	maxRetries uint64
}

// NewFetcher returns new Fetcher retrying transient failures up to
// maxRetries times.
func NewFetcher(client *http.Client, userAgent string, maxRetries uint64) *Fetcher {
	return &Fetcher{
		client:     client,
		userAgent:  userAgent,
		maxRetries: maxRetries,
	}
}

// FetchFile returns ReadCloser with feed file fetched from provided url or
// error. Gzip payloads are decompressed transparently. The caller is
// responsible for closing returned ReadCloser.
func (f *Fetcher) FetchFile(ctx context.Context, url string) (io.ReadCloser, error) {
	var body io.ReadCloser

	backoff := retry.WithMaxRetries(f.maxRetries, retry.NewFibonacci(retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		fetched, err := f.fetchOnce(ctx, url)
		if err != nil {
			return err
		}
		body = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Accept", "application/xml, text/xml")
	req.Header.Add("Accept-Encoding", "gzip")
	req.Header.Add("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("can't get http response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, retry.RetryableError(ErrStatusNotOK)
		}
		return nil, ErrStatusNotOK
	}

	// html means an error page or auth wall was served instead of a feed
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		_ = resp.Body.Close()
		return nil, ErrContentTypeNotSupported
	}

	return sniffCompression(resp.Body)
}

// sniffCompression decompresses gzip payloads detected by magic bytes.
// Feeds in the wild routinely mislabel Content-Type, so the header is not
// trusted for this.
func sniffCompression(body io.ReadCloser) (io.ReadCloser, error) {
	buffered := bufio.NewReader(body)

	magic, err := buffered.Peek(2)
	if err != nil && err != io.EOF {
		_ = body.Close()
		return nil, fmt.Errorf("can't read response: %w", err)
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return decompressResponse(buffered, body)
	}

	return bodyReadCloser{reader: buffered, body: body}, nil
}

// decompressResponse returns io.ReadCloser with decompressed http response
// and error.
func decompressResponse(buffered io.Reader, body io.ReadCloser) (io.ReadCloser, error) {
	decompressed, err := gzip.NewReader(buffered)
	if err != nil {
		_ = body.Close()
		return nil, fmt.Errorf("can't decompress response: %w", err)
	}

	return bodyReadCloser{reader: decompressed, body: body}, nil
}

// bodyReadCloser reads from the possibly wrapped reader, but closes the
// original response body.
type bodyReadCloser struct {
	reader io.Reader
	body   io.ReadCloser
}

// Read reads bytes from the wrapped Reader into p.
func (r bodyReadCloser) Read(p []byte) (n int, err error) {
	return r.reader.Read(p)
}

// Close closes the underlying response body.
func (r bodyReadCloser) Close() error {
	return r.body.Close()
}
