package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// maxBodySize caps how much of a response body is buffered.
const maxBodySize = 1 << 20

// HTTP implements Requester over net/http.
// Cookies received under the include mode are kept in memory for the lifetime
// of the requester, so a refresh sends back the session cookie the endpoint set.
type HTTP struct {
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	// jar holds cookies for the include and same-origin modes
	jar http.CookieJar
	// userAgent is sent unless the request config overrides it
	userAgent string
}

// newHTTP creates a new HTTP requester.
// It configures a 10-second timeout for all requests.
func newHTTP(opts ...Option) *HTTP {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	h := &HTTP{
		client:    &http.Client{Timeout: defaultTimeout},
		jar:       jar,
		userAgent: "checkauth-cli/1.0",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Request issues cfg.Method against rawURL and buffers the body.
// Transport failures are returned as errors; any received status is a Response.
func (h *HTTP) Request(ctx context.Context, rawURL string, cfg RequestConfig) (Response, error) {
	method := strings.ToUpper(strings.TrimSpace(cfg.Method))
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json, */*")
	}
	if h.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.clientFor(req.URL, cfg.Credentials).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if readErr == nil && int64(len(body)) > maxBodySize {
		readErr = ErrBodyTooLarge
	}
	return &response{status: resp.StatusCode, body: body, readErr: readErr}, nil
}

// clientFor returns a shallow copy of the client wired to the jar the
// credentials mode allows.
func (h *HTTP) clientFor(target *url.URL, mode Credentials) *http.Client {
	c := *h.client
	switch mode {
	case CredentialsOmit:
		c.Jar = nil
	case CredentialsSameOrigin:
		c.Jar = &originJar{jar: h.jar, origin: origin(target)}
	default:
		c.Jar = h.jar
	}
	return &c
}

// originJar forwards to jar only for URLs on the given origin.
type originJar struct {
	jar    http.CookieJar
	origin string
}

func (o *originJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if o.jar == nil || origin(u) != o.origin {
		return
	}
	o.jar.SetCookies(u, cookies)
}

func (o *originJar) Cookies(u *url.URL) []*http.Cookie {
	if o.jar == nil || origin(u) != o.origin {
		return nil
	}
	return o.jar.Cookies(u)
}

// origin returns scheme://host[:port] in lower case.
func origin(u *url.URL) string {
	if u == nil {
		return ""
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}
