// Package http provides the router facade, server wrapper and response helpers
package http

import (
	"encoding/json"
	"io"
	stdhttp "net/http"

	perr "orderexport/internal/platform/errors"
	pnet "orderexport/internal/platform/net"
)

// Envelope is the JSON body used by the operational endpoints
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Text writes body as text/plain with the given status
func Text(w stdhttp.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wr.Code,
		Error:      wr.Message,
		RequestID:  pnet.RequestID(r.Context()),
	})
}

// Response is a functional response object for return-style handlers
// A string Body is written as text/plain, an error Body as a JSON error envelope
// unless PublicError is set, and anything else as a JSON data envelope
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header

	// PublicError replaces the error detail with a fixed plain-text message
	PublicError string
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	switch body := resp.Body.(type) {
	case error:
		if resp.PublicError != "" {
			if resp.Status == 0 {
				status = stdhttp.StatusInternalServerError
			}
			Text(w, status, resp.PublicError)
			return
		}
		RespondError(w, r, body)
	case string:
		Text(w, status, body)
	default:
		JSON(w, status, Envelope{
			StatusCode: status,
			Status:     stdhttp.StatusText(status),
			RequestID:  pnet.RequestID(r.Context()),
			Data:       body,
		})
	}
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }

// Opaque returns a 500 text response carrying only msg; err stays server-side
func Opaque(err error, msg string) Response {
	return Response{Status: stdhttp.StatusInternalServerError, Body: err, PublicError: msg}
}

// WithHeader returns a copy of resp with an extra header set
func (resp Response) WithHeader(k, v string) Response {
	h := stdhttp.Header{}
	for hk, hv := range resp.Header {
		h[hk] = append([]string(nil), hv...)
	}
	h.Set(k, v)
	resp.Header = h
	return resp
}
