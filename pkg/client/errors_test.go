package client

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestNormalize_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		in   Failure
		want Error
	}{
		{
			name: "401 beats detail",
			in:   Failure{HasResponse: true, StatusCode: 401, Body: ErrorBody{Detail: strPtr("expired")}},
			want: Error{Kind: KindAuthExpired, Message: MsgAuthExpired},
		},
		{
			name: "403 beats msg",
			in:   Failure{HasResponse: true, StatusCode: 403, Body: ErrorBody{Msg: []byte(`"no"`)}},
			want: Error{Kind: KindPermissionDenied, Message: MsgPermissionDenied},
		},
		{
			name: "detail beats msg",
			in:   Failure{HasResponse: true, StatusCode: 400, Body: ErrorBody{Detail: strPtr("d"), Msg: []byte(`"m"`)}},
			want: Error{Kind: KindBackend, Message: "d"},
		},
		{
			name: "msg number",
			in:   Failure{HasResponse: true, StatusCode: 400, Body: ErrorBody{Msg: []byte(`42`)}},
			want: Error{Kind: KindBackend, Message: "42"},
		},
		{
			name: "network",
			in:   Failure{Transport: &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}},
			want: Error{Kind: KindNetwork, Message: "connection refused"},
		},
		{
			name: "response without usable body",
			in:   Failure{HasResponse: true, StatusCode: 502},
			want: Error{Kind: KindUnknown, Message: MsgUnknown},
		},
		{
			name: "nothing at all",
			in:   Failure{},
			want: Error{Kind: KindUnknown, Message: MsgUnknown},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseErrorBody(t *testing.T) {
	body := parseErrorBody([]byte(`{"detail":"X","msg":{"a":"x"}}`))
	if assert.NotNil(t, body.Detail) {
		assert.Equal(t, "X", *body.Detail)
	}
	assert.JSONEq(t, `{"a":"x"}`, string(body.Msg))

	assert.Equal(t, ErrorBody{}, parseErrorBody([]byte(`not json`)))
	assert.Equal(t, ErrorBody{}, parseErrorBody([]byte(`{"msg":null}`)))
}

func TestOrderedValues(t *testing.T) {
	got, err := orderedValues([]byte(`{"z":"1","a":"2","m":["3","4"],"n":true}`))
	assert.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3, 4", "true"}, got)

	_, err = orderedValues([]byte(`"scalar"`))
	assert.Error(t, err)
}

func TestErrorIsOnlyMessage(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindBackend, Message: "room taken"})
	assert.Equal(t, KindBackend, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, "room taken", (&Error{Kind: KindBackend, Message: "room taken"}).Error())
	assert.Equal(t, "auth_expired", KindAuthExpired.String())
}
