package httpclient

import (
	"slices"
	"strings"
	"time"
)

// SavedRequest is a named request kept in the store.
type SavedRequest struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Method      string     `json:"method"`
	URL         string     `json:"url"`
	Params      []KeyValue `json:"params"`
	Headers     []KeyValue `json:"headers"`
	BodyType    string     `json:"bodyType"`
	BodyContent string     `json:"bodyContent"`
	FormData    []KeyValue `json:"formData,omitempty"`
	CreatedAt   int64      `json:"createdAt"`
}

// Request returns a copy of the saved request ready for editing.
func (s SavedRequest) Request() Request {
	return Request{
		Method:      s.Method,
		URL:         s.URL,
		Params:      slices.Clone(s.Params),
		Headers:     slices.Clone(s.Headers),
		FormData:    slices.Clone(s.FormData),
		BodyType:    s.BodyType,
		BodyContent: s.BodyContent,
	}
}

// Collection is the list of saved requests, in save order.
type Collection struct {
	Requests []SavedRequest
	now      func() time.Time
	newID    func() string
}

// NewCollection wraps saved requests.
func NewCollection(reqs []SavedRequest, now func() time.Time, newID func() string) *Collection {
	return &Collection{Requests: reqs, now: now, newID: newID}
}

// Save stores r under name.
func (c *Collection) Save(name string, r Request) (SavedRequest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavedRequest{}, ErrEmptyName
	}
	if strings.TrimSpace(r.URL) == "" {
		return SavedRequest{}, ErrEmptyURL
	}
	bodyType := r.BodyType
	if bodyType == "" {
		bodyType = BodyNone
	}
	s := SavedRequest{
		ID:          c.newID(),
		Name:        name,
		Method:      r.Method,
		URL:         r.URL,
		Params:      nonNil(slices.Clone(r.Params)),
		Headers:     nonNil(slices.Clone(r.Headers)),
		BodyType:    bodyType,
		BodyContent: r.BodyContent,
		FormData:    slices.Clone(r.FormData),
		CreatedAt:   c.now().UnixMilli(),
	}
	c.Requests = append(c.Requests, s)
	return s, nil
}

// Delete removes the saved request id.
func (c *Collection) Delete(id string) bool {
	before := len(c.Requests)
	c.Requests = slices.DeleteFunc(c.Requests, func(s SavedRequest) bool { return s.ID == id })
	return len(c.Requests) != before
}

// Find returns the saved request id.
func (c *Collection) Find(id string) (SavedRequest, bool) {
	i := slices.IndexFunc(c.Requests, func(s SavedRequest) bool { return s.ID == id })
	if i < 0 {
		return SavedRequest{}, false
	}
	return c.Requests[i], true
}

func nonNil(kvs []KeyValue) []KeyValue {
	if kvs == nil {
		return []KeyValue{}
	}
	return kvs
}
