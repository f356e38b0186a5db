// Package httpclient is the HTTP request widget: compose a request, send it
// and inspect the response, with named requests saved to the store.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"charm.land/log/v2"
	"github.com/go-resty/resty/v2"
)

// Methods are the supported request methods, in picker order.
var Methods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
	http.MethodPatch, http.MethodHead, http.MethodOptions,
}

// Body types, in picker order.
const (
	BodyNone       = "none"
	BodyJSON       = "json"
	BodyFormData   = "form-data"
	BodyRaw        = "raw"
	BodyURLEncoded = "x-www-form-urlencoded"
)

// BodyTypes lists the body types in picker order.
var BodyTypes = []string{BodyNone, BodyJSON, BodyFormData, BodyRaw, BodyURLEncoded}

var (
	// ErrEmptyURL is returned when sending or saving without a URL.
	ErrEmptyURL = errors.New("please enter a URL")
	// ErrEmptyName is returned when saving a request without a name.
	ErrEmptyName = errors.New("please enter a name for the request")
	// ErrMethod is returned for a method outside Methods.
	ErrMethod = errors.New("unsupported method")
)

// KeyValue is a query parameter, header or form field. Entries without a
// key or with Enabled unset are skipped.
type KeyValue struct {
	ID      string `json:"id"`
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

func active(kvs []KeyValue) []KeyValue {
	var out []KeyValue
	for _, kv := range kvs {
		if kv.Enabled && kv.Key != "" {
			out = append(out, kv)
		}
	}
	return out
}

// Request is what the user composed.
type Request struct {
	Method      string
	URL         string
	Params      []KeyValue
	Headers     []KeyValue
	FormData    []KeyValue
	BodyType    string
	BodyContent string
}

// Prepared is a request ready to hand to the transport.
type Prepared struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// BuildURL appends the active params to base, keeping any query and
// fragment already present.
func BuildURL(base string, params []KeyValue) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	var pairs []string
	for _, p := range active(params) {
		pairs = append(pairs, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	if len(pairs) == 0 {
		return base
	}

	fragment := ""
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base, fragment = base[:i], base[i:]
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
		if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
			sep = ""
		}
	}
	return base + sep + strings.Join(pairs, "&") + fragment
}

// Prepare resolves the URL, headers and body of r.
func (r Request) Prepare() (*Prepared, error) {
	if strings.TrimSpace(r.URL) == "" {
		return nil, ErrEmptyURL
	}
	method := strings.ToUpper(r.Method)
	if !slices.Contains(Methods, method) {
		return nil, fmt.Errorf("%w: %q", ErrMethod, r.Method)
	}

	p := &Prepared{
		Method: method,
		URL:    BuildURL(r.URL, r.Params),
		Header: http.Header{},
	}
	for _, h := range active(r.Headers) {
		p.Header.Set(h.Key, h.Value)
	}

	body, contentType, err := r.body(method)
	if err != nil {
		return nil, err
	}
	p.Body = body
	switch {
	case r.BodyType == BodyFormData && body != nil:
		p.Header.Set("Content-Type", contentType)
	case contentType != "" && p.Header.Get("Content-Type") == "":
		p.Header.Set("Content-Type", contentType)
	}
	return p, nil
}

// body returns the encoded body and its default content type. GET and HEAD
// never carry a body.
func (r Request) body(method string) ([]byte, string, error) {
	if r.BodyType == "" || r.BodyType == BodyNone || method == http.MethodGet || method == http.MethodHead {
		return nil, "", nil
	}

	switch r.BodyType {
	case BodyJSON:
		content := r.BodyContent
		if strings.TrimSpace(content) == "" {
			content = "{}"
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(content)); err != nil {
			return []byte(r.BodyContent), "application/json", nil
		}
		return buf.Bytes(), "application/json", nil

	case BodyFormData:
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for _, f := range active(r.FormData) {
			if err := mw.WriteField(f.Key, f.Value); err != nil {
				return nil, "", fmt.Errorf("form field %s: %w", f.Key, err)
			}
		}
		if err := mw.Close(); err != nil {
			return nil, "", fmt.Errorf("form data: %w", err)
		}
		return buf.Bytes(), mw.FormDataContentType(), nil

	case BodyURLEncoded:
		var pairs []string
		for _, f := range active(r.FormData) {
			pairs = append(pairs, url.QueryEscape(f.Key)+"="+url.QueryEscape(f.Value))
		}
		return []byte(strings.Join(pairs, "&")), "application/x-www-form-urlencoded;charset=UTF-8", nil

	case BodyRaw:
		return []byte(r.BodyContent), "text/plain;charset=UTF-8", nil
	}
	return nil, "", nil
}

// Response is what the widget shows after a send. A transport failure is
// reported as status 0 with the error text as body.
type Response struct {
	Status     int
	StatusText string
	Headers    map[string]string
	Body       string
	Time       time.Duration
}

// OK reports whether the status is 2xx.
func (r Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

// ClientConfig tunes the transport.
type ClientConfig struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
}

// Client sends prepared requests.
type Client struct {
	resty *resty.Client
}

// NewClient builds a client from cfg. Transport warnings go to logger.
func NewClient(cfg ClientConfig, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	rc := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(max(0, cfg.Retries)).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetLogger(logger)
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	return &Client{resty: rc}
}

// Do prepares and sends r. Only preparation errors are returned; transport
// failures come back as a status 0 Response.
func (c *Client) Do(ctx context.Context, r Request) (Response, error) {
	p, err := r.Prepare()
	if err != nil {
		return Response{}, err
	}

	req := c.resty.R().SetContext(ctx)
	for k, vs := range p.Header {
		req.SetHeader(k, strings.Join(vs, ", "))
	}
	if p.Body != nil {
		req.SetBody(p.Body)
	}

	start := time.Now()
	resp, err := req.Execute(p.Method, p.URL)
	elapsed := time.Since(start)
	if err != nil {
		return Response{
			Status:     0,
			StatusText: "Network Error",
			Headers:    map[string]string{},
			Body:       err.Error(),
			Time:       elapsed,
		}, nil
	}

	headers := make(map[string]string, len(resp.Header()))
	for k, vs := range resp.Header() {
		headers[strings.ToLower(k)] = strings.Join(vs, ", ")
	}
	return Response{
		Status:     resp.StatusCode(),
		StatusText: http.StatusText(resp.StatusCode()),
		Headers:    headers,
		Body:       FormatBody(resp.Header().Get("Content-Type"), resp.Body()),
		Time:       elapsed,
	}, nil
}

// FormatBody renders a response body for display: indented JSON, text as
// is, anything else as a size summary.
func FormatBody(contentType string, body []byte) string {
	switch {
	case strings.Contains(contentType, "application/json"):
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err != nil {
			return string(body)
		}
		return buf.String()
	case strings.Contains(contentType, "text/"):
		return string(body)
	default:
		return fmt.Sprintf("[Blob - %d bytes]", len(body))
	}
}
