package core

import (
	"maps"
	"slices"
)

// Params maps parameter names to values. Values are normally strings; any
// other value must have a deterministic encoding or signing will fail.
// A Params is built fresh for each call.
type Params map[string]any

// Set stores value under key and returns p for chaining.
func (p Params) Set(key string, value any) Params {
	p[key] = value
	return p
}

// SetIfNotEmpty stores value only when it is non-empty.
func (p Params) SetIfNotEmpty(key, value string) Params {
	if value != "" {
		p[key] = value
	}
	return p
}

// Keys returns the parameter names in ascending lexicographic order.
func (p Params) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Request describes one call against the REST API before it is signed.
type Request struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Params      Params `json:"params,omitempty"`
	RequireAuth bool   `json:"require_auth"`
}

func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
		Params: make(Params),
	}
}

func (r *Request) SetParam(key string, value any) *Request {
	if r.Params == nil {
		r.Params = make(Params)
	}
	r.Params[key] = value
	return r
}

func (r *Request) SetParams(params Params) *Request {
	if r.Params == nil {
		r.Params = make(Params)
	}
	maps.Copy(r.Params, params)
	return r
}

func (r *Request) SetRequireAuth(require bool) *Request {
	r.RequireAuth = require
	return r
}
