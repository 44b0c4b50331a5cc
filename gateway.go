package console

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/valyala/fasthttp"
)

const defaultRequestTimeout = 15 * time.Second

// Client is the API gateway: a single outbound dispatcher that attaches
// the bearer credential to every request and classifies every failure.
type Client struct {
	baseURL string
	store   TokenStore
	http    *fasthttp.Client
	timeout time.Duration
	policy  *RedirectPolicy
	logger  Logger
}

// NewClient returns a gateway client bound to the durable token store.
// The token is read from the store at send time, never cached, so a
// login or logout in another handler is picked up immediately.
func NewClient(store TokenStore, cfg Config) *Client {
	timeout := defaultRequestTimeout
	if cfg.GetRequestTimeout() > 0 {
		timeout = time.Duration(cfg.GetRequestTimeout()) * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		store:   store,
		http:    &fasthttp.Client{},
		timeout: timeout,
		policy:  NewRedirectPolicy(cfg),
		logger:  defLogger{},
	}
}

func (c *Client) WithLogger(logger Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

func (c *Client) WithHTTPClient(hc *fasthttp.Client) *Client {
	if hc != nil {
		c.http = hc
	}
	return c
}

func (c *Client) WithRedirectPolicy(policy *RedirectPolicy) *Client {
	if policy != nil {
		c.policy = policy
	}
	return c
}

type requestOptions struct {
	nav         Navigator
	localErrors bool
	headers     map[string]string
}

// RequestOption customizes a single gateway call.
type RequestOption func(*requestOptions)

// WithNavigator binds the request to a page context so classified
// failures trigger a full redirect per the global policy. Without a
// navigator the call only returns the classified error.
func WithNavigator(nav Navigator) RequestOption {
	return func(o *requestOptions) {
		o.nav = nav
	}
}

// WithLocalErrorHandling suppresses the global redirect for this call;
// the call site owns the failure (e.g. an inline "invalid password"
// message on the login form).
func WithLocalErrorHandling() RequestOption {
	return func(o *requestOptions) {
		o.localErrors = true
	}
}

// WithRequestHeader adds a header to this call only.
func WithRequestHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[key] = value
	}
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, fasthttp.MethodGet, path, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, fasthttp.MethodPost, path, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, fasthttp.MethodPut, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.do(ctx, fasthttp.MethodDelete, path, nil, nil, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	options := &requestOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	if err := ctx.Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "request context done")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	for key, value := range options.headers {
		req.Header.Set(key, value)
	}

	// Send-time read: the store is the source of truth, not a closure.
	// A caller-pinned Authorization header wins over the store.
	if _, pinned := options.headers[fasthttp.HeaderAuthorization]; !pinned {
		token, err := c.store.Read(ctx)
		if err != nil {
			c.logger.Warn("token store read failed", "error", err)
		}
		if token != "" {
			req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
		}
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryBadInput, "encode request body")
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		richErr := classifyTransportError(0, "", err)
		c.dispatchRedirect(options, richErr)
		return richErr
	}

	status := resp.StatusCode()
	if status >= 400 {
		var envelope map[string]any
		// Best effort; validation failures usually carry {"message": ...}.
		_ = json.Unmarshal(resp.Body(), &envelope)

		richErr := classifyTransportError(status, responseMessage(envelope), nil)
		c.dispatchRedirect(options, richErr)
		return richErr
	}

	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryOperation, "decode response body")
		}
	}

	return nil
}

// dispatchRedirect fires the global redirect at most once per failed
// request. The classified error is returned regardless, so call sites
// that catch it still run, exactly like the interceptor they replace.
func (c *Client) dispatchRedirect(options *requestOptions, richErr *goerrors.Error) {
	if options.localErrors || options.nav == nil {
		return
	}

	target, ok := c.policy.Target(richErr)
	if !ok {
		return
	}

	c.logger.Info("gateway redirect",
		"target", target,
		"text_code", richErr.TextCode,
	)

	if err := options.nav.Redirect(target, http.StatusFound); err != nil {
		c.logger.Error("gateway redirect failed", "error", err)
	}
}
