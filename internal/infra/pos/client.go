// Package pos talks to the point-of-sale HTTP API: catalog, promotions,
// customer profiles, spots and the order endpoint.
package pos

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxBodyBytes = 4 << 20

// Recorder receives one observation per POS call; status 0 is a transport failure.
type Recorder interface {
	POSRequest(method string, status int)
}

// StatusError is a non-2xx POS response.
type StatusError struct {
	Method string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("POS %s returned %d: %s", e.Method, e.Status, e.Body)
}

type Client struct {
	baseURL  string
	token    string
	orderURL string
	http     *http.Client
	recorder Recorder
	logger   *slog.Logger
}

func NewClient(cfg config.POSConfig, recorder Recorder, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		orderURL: cfg.OrderAPIURL,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		recorder: recorder,
		logger:   logger,
	}
}

// get calls a read method with params in the query string.
func (c *Client) get(ctx context.Context, method string, params url.Values) (*node, error) {
	return c.call(ctx, http.MethodGet, method, params)
}

func (c *Client) call(ctx context.Context, httpMethod, method string, params url.Values) (*node, error) {
	u, err := url.Parse(c.baseURL + "/" + method)
	if err != nil {
		return nil, errs.Wrapf(err, "build POS url for %s", method)
	}
	q := u.Query()
	q.Set("token", c.token)
	q.Set("format", "json")

	var body io.Reader
	if httpMethod == http.MethodGet {
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
	} else if params != nil {
		body = strings.NewReader(params.Encode())
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, httpMethod, u.String(), body)
	if err != nil {
		return nil, errs.Wrapf(err, "build POS request for %s", method)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	}
	req.Header.Set("Accept", "application/json")

	status, raw, err := c.do(req, method)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, errs.Mark(&StatusError{Method: method, Status: status, Body: raw}, errs.ErrUpstreamUnavailable)
	}

	root, err := parse([]byte(raw))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, method), errs.ErrUpstreamUnavailable)
	}
	if err := envelopeError(root); err != nil {
		return nil, errs.Mark(errs.Wrap(err, method), errs.ErrUpstreamUnavailable)
	}
	return root, nil
}

// do executes req and returns the status and body text.
func (c *Client) do(req *http.Request, method string) (int, string, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		err = errs.StripURL(err)
		c.record(method, 0)
		c.logger.WarnContext(req.Context(), "POS request failed",
			slog.String("method", method),
			slog.String("error", err.Error()))
		return 0, "", errs.Mark(errs.Wrapf(err, "POS %s", method), errs.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()
	c.record(method, resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, "", errs.Mark(errs.Wrapf(err, "read POS %s response", method), errs.ErrUpstreamUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WarnContext(req.Context(), "POS returned non-success status",
			slog.String("method", method),
			slog.Int("status", resp.StatusCode))
		text := strings.TrimSpace(string(raw))
		if text == "" {
			text = http.StatusText(resp.StatusCode)
		}
		return resp.StatusCode, text, nil
	}
	return resp.StatusCode, string(raw), nil
}

func (c *Client) record(method string, status int) {
	if c.recorder != nil {
		c.recorder.POSRequest(method, status)
	}
}

// response unwraps the conventional {"response": ...} envelope.
func response(root *node) *node {
	if r := root.field("response"); r != nil {
		return r
	}
	return root
}
