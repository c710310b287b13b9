// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import "encoding/json"

// Request is one decoded JSON-RPC request body (spec §4.5):
//
//	{ "id": <scalar>, "method": <string>, "params": <array> }
type Request struct {
	ID     interface{}     `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Response is the JSON-RPC envelope returned for one Request:
//
//	{"result": null, "error": {...}, "id": <id>}
//
// Exactly one of Result/Error is non-nil.
type Response struct {
	Result interface{} `json:"result"`
	Error  *Error      `json:"error"`
	ID     interface{} `json:"id"`
}

// NewResultResponse returns a successful Response echoing id.
func NewResultResponse(id interface{}, result interface{}) *Response {
	return &Response{Result: result, ID: id}
}

// NewErrorResponse returns a failed Response echoing id.
func NewErrorResponse(id interface{}, err *Error) *Response {
	return &Response{Error: err, ID: id}
}

// ParseRequestBody decodes body as either a single Request or, for
// batching (spec §4.5 "Batching"), a JSON array of Request values. The
// returned bool reports whether the body was a batch, which the
// transport uses to decide whether to wrap the result array.
func ParseRequestBody(body []byte) (reqs []Request, batch bool, err error) {
	trimmed := skipLeadingSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(body, &reqs); err != nil {
			return nil, true, err
		}
		return reqs, true, nil
	}

	var single Request
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, false, err
	}
	return []Request{single}, false, nil
}

func skipLeadingSpace(b []byte) []byte {
	i := 0
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\n', '\r':
			i++
			continue
		}
		break
	}
	return b[i:]
}

// UnmarshalParams decodes req.Params, a JSON array, into dst (normally
// a pointer to a slice of concrete types, one per positional
// parameter). A missing/empty Params decodes as a zero-length array.
func UnmarshalParams(req Request, dst interface{}) error {
	if len(req.Params) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params, dst)
}
