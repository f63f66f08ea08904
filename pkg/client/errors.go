package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Messages produced by the normalization chain.
const (
	MsgAuthExpired      = "authentication failed, please sign in again"
	MsgPermissionDenied = "you do not have permission to perform this action"
	MsgUnknown          = "an error occurred"
)

// Kind classifies a normalized failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthExpired
	KindPermissionDenied
	KindBackend
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAuthExpired:
		return "auth_expired"
	case KindPermissionDenied:
		return "permission_denied"
	case KindBackend:
		return "backend"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is the only error value a failed request surfaces. Its text is the
// resolved message and nothing else.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the Kind of err if it wraps an *Error, else KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Failure is the tagged shape of a failed round trip, fed to Normalize.
// HasResponse is false when the backend never answered.
type Failure struct {
	HasResponse bool
	StatusCode  int
	Body        ErrorBody
	Transport   error
}

// ErrorBody holds the error fields the backend may send.
type ErrorBody struct {
	Detail *string
	Msg    json.RawMessage
}

// parseErrorBody extracts detail/msg from a JSON error body. Anything that is
// not a JSON object yields an empty ErrorBody.
func parseErrorBody(data []byte) ErrorBody {
	var raw struct {
		Detail json.RawMessage `json:"detail"`
		Msg    json.RawMessage `json:"msg"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrorBody{}
	}
	var body ErrorBody
	if s, ok := scalarText(raw.Detail); ok && s != "" {
		body.Detail = &s
	}
	if len(raw.Msg) > 0 && !bytes.Equal(raw.Msg, []byte("null")) {
		body.Msg = raw.Msg
	}
	return body
}

type matcher func(Failure) (*Error, bool)

// chain is checked in order; the first match wins.
var chain = []matcher{
	matchUnauthorized,
	matchForbidden,
	matchDetail,
	matchMsg,
	matchNoResponse,
}

// Normalize resolves a failure into its single user-facing error.
func Normalize(f Failure) *Error {
	for _, m := range chain {
		if e, ok := m(f); ok {
			return e
		}
	}
	return &Error{Kind: KindUnknown, Message: MsgUnknown}
}

func matchUnauthorized(f Failure) (*Error, bool) {
	if f.HasResponse && f.StatusCode == http.StatusUnauthorized {
		return &Error{Kind: KindAuthExpired, Message: MsgAuthExpired}, true
	}
	return nil, false
}

func matchForbidden(f Failure) (*Error, bool) {
	if f.HasResponse && f.StatusCode == http.StatusForbidden {
		return &Error{Kind: KindPermissionDenied, Message: MsgPermissionDenied}, true
	}
	return nil, false
}

func matchDetail(f Failure) (*Error, bool) {
	if f.HasResponse && f.Body.Detail != nil {
		return &Error{Kind: KindBackend, Message: *f.Body.Detail}, true
	}
	return nil, false
}

func matchMsg(f Failure) (*Error, bool) {
	if !f.HasResponse || len(f.Body.Msg) == 0 {
		return nil, false
	}
	if s, ok := scalarText(f.Body.Msg); ok {
		if s == "" {
			return nil, false
		}
		return &Error{Kind: KindBackend, Message: s}, true
	}
	values, err := orderedValues(f.Body.Msg)
	if err != nil || len(values) == 0 {
		return nil, false
	}
	return &Error{Kind: KindBackend, Message: strings.Join(values, ", ")}, true
}

func matchNoResponse(f Failure) (*Error, bool) {
	if !f.HasResponse && f.Transport != nil {
		return &Error{Kind: KindNetwork, Message: transportMessage(f.Transport)}, true
	}
	return nil, false
}

// transportMessage strips the *url.Error wrapper so the message reads like the
// underlying cause rather than "Get <url>: ...".
func transportMessage(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	return err.Error()
}

// scalarText renders a JSON string, number or bool as text. It reports false
// for objects, arrays and null.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[', 'n':
		return "", false
	default:
		return string(raw), true
	}
}

// orderedValues returns the values of a JSON object (or the elements of a JSON
// array) as text, in the order they appear on the wire. Nested arrays are
// joined with ", ".
func orderedValues(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil, fmt.Errorf("orderedValues: not a container")
	}
	var out []string
	for dec.More() {
		if delim == '{' {
			if _, err := dec.Token(); err != nil { // key
				return nil, err
			}
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		if s, ok := scalarText(v); ok {
			out = append(out, s)
			continue
		}
		nested, err := orderedValues(v)
		if err != nil {
			continue
		}
		if len(nested) > 0 {
			out = append(out, strings.Join(nested, ", "))
		}
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}
	return out, nil
}
