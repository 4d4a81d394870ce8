// Package gateway is the typed REST client for the marketplace backend. All
// endpoints answer a uniform {code, message, data} envelope; a code outside
// [200,300) is a logical failure even when the transport status is 200.
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	jsonapi "gitlab.com/distributed_lab/json-api-connector"
	"gitlab.com/distributed_lab/json-api-connector/cerrors"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
	"gitlab.com/tokend/connectors/signed"
)

// TokenSource yields the current access token; empty means logged out and no
// Authorization header is attached.
type TokenSource interface {
	Access() string
}

type Client struct {
	log       *logan.Entry
	connector *jsonapi.Connector
}

func New(log *logan.Entry, endpoint *url.URL, timeout time.Duration, tokens TokenSource) *Client {
	hc := &http.Client{
		Timeout:   timeout,
		Transport: &authTransport{base: http.DefaultTransport, tokens: tokens},
	}
	return &Client{
		log:       log,
		connector: jsonapi.NewConnector(signed.NewClient(hc, endpoint)),
	}
}

type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens != nil {
		if tok := t.tokens.Access(); tok != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return t.base.RoundTrip(req)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decode interprets the envelope: logical success iff 200 <= code < 300,
// independent of the transport status.
func (c *Client) decode(env envelope, out interface{}) error {
	if env.Code < 200 || env.Code >= 300 {
		return &ApiError{Code: env.Code, Message: env.Message, Body: env.Data}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &ApiError{Code: env.Code, Message: "malformed response payload: " + err.Error(), Body: env.Data}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	u, err := url.Parse(path)
	if err != nil {
		return errors.Wrap(err, "failed to parse request path")
	}

	var env envelope
	if err = c.connector.PostJSON(u, body, ctx, &env); err != nil {
		return asApiError(err)
	}
	return c.decode(env, out)
}

func (c *Client) get(path string, query url.Values, out interface{}) error {
	u, err := url.Parse(path)
	if err != nil {
		return errors.Wrap(err, "failed to parse request path")
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var env envelope
	if err = c.connector.Get(u, &env); err != nil {
		return asApiError(err)
	}
	return c.decode(env, out)
}

func asApiError(err error) error {
	if c, ok := err.(cerrors.Error); ok {
		return &ApiError{Status: c.Status(), Message: err.Error()}
	}
	return &ApiError{Message: err.Error()}
}
