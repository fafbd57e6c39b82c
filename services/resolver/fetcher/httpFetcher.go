package fetcher

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/statpage/metric-resolver/services/resolver/common"
	"github.com/statpage/metric-resolver/services/resolver/selector"
	"github.com/tidwall/gjson"
)

var log = logger.GetOrCreate("fetcher")

type httpFetcher struct {
	client *http.Client
	sem    chan struct{}
}

// NewHTTPFetcher creates a new HTTP-based source fetcher. maxConcurrent bounds
// the number of in-flight requests; 0 disables the bound. The semaphore gates
// only the network call, never computation.
func NewHTTPFetcher(timeout time.Duration, maxConcurrent int) *httpFetcher {
	var sem chan struct{}
	if maxConcurrent > 0 {
		sem = make(chan struct{}, maxConcurrent)
	}

	return &httpFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		sem: sem,
	}
}

// Fetch performs one HTTP request described by the source spec, decodes the
// body per the declared format and delegates to the selector extractor. No
// retries happen at this layer; failover is the resolver's responsibility.
func (f *httpFetcher) Fetch(ctx context.Context, spec common.SourceSpec) (common.FetchOutcome, error) {
	if f.sem != nil {
		select {
		case f.sem <- struct{}{}:
			defer func() { <-f.sem }()
		case <-ctx.Done():
			return common.FetchOutcome{}, ctx.Err()
		}
	}

	body, err := f.doRequest(ctx, spec)
	if err != nil {
		return common.FetchOutcome{}, err
	}

	if spec.Format == common.FormatJSON && !gjson.Valid(body) {
		return common.FetchOutcome{}, errMalformedJSON(spec.URL)
	}

	value, found, err := selector.Extract(body, spec.Selector, spec.Format)
	if err != nil {
		return common.FetchOutcome{}, err
	}

	return common.FetchOutcome{
		RawBody: body,
		Value:   value,
		Found:   found,
	}, nil
}

func (f *httpFetcher) doRequest(ctx context.Context, spec common.SourceSpec) (string, error) {
	method := spec.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if spec.Body != "" {
		reqBody = strings.NewReader(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, spec.URL, reqBody)
	if err != nil {
		return "", err
	}

	for name, value := range spec.Headers {
		req.Header.Set(name, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errStatusNotOK(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	log.Trace("fetched source", "url", spec.URL, "method", method, "bytes", len(body))

	return string(body), nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (f *httpFetcher) IsInterfaceNil() bool {
	return f == nil
}
