package strategy

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
)

const maxMultipartMemory = 32 << 20

// Request carries the credential-bearing parts of an inbound request in a
// transport-neutral shape. Strategies read it, they never mutate it.
//
// A nil Body means the request had no decodable body container at all, which
// is distinct from an empty one. Strategies use that distinction to pick
// their credential lookup order.
type Request struct {
	Query  url.Values
	Body   url.Values
	Header http.Header
}

// FromHTTP builds a Request from an *http.Request. Form-encoded and JSON
// object bodies are decoded into Body; anything else leaves Body nil.
// Decoding consumes the underlying body stream.
func FromHTTP(r *http.Request) *Request {
	req := &Request{
		Query:  r.URL.Query(),
		Header: r.Header,
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err == nil {
			req.Body = r.PostForm
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err == nil {
			req.Body = r.PostForm
		}
	case "application/json":
		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err == nil {
			body := make(url.Values, len(fields))
			for k, v := range fields {
				if s, ok := v.(string); ok {
					body.Set(k, s)
				}
			}
			req.Body = body
		}
	}

	return req
}
