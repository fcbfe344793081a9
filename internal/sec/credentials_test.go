package sec

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBasicAuth(t *testing.T) {
	t.Parallel()

	encode := func(payload string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(payload))
	}

	tests := []struct {
		name           string
		header         string
		wantIdentifier string
		wantSecret     string
		wantOK         bool
	}{
		{
			name:           "well formed",
			header:         encode("test@user.com:password"),
			wantIdentifier: "test@user.com",
			wantSecret:     "password",
			wantOK:         true,
		},
		{
			name:           "secret containing colons",
			header:         encode("test@user.com:pa:ss:word"),
			wantIdentifier: "test@user.com",
			wantSecret:     "pa:ss:word",
			wantOK:         true,
		},
		{
			name:           "empty identifier and secret",
			header:         encode(":"),
			wantIdentifier: "",
			wantSecret:     "",
			wantOK:         true,
		},
		{
			name:           "scheme is case-insensitive",
			header:         "basic " + base64.StdEncoding.EncodeToString([]byte("a:b")),
			wantIdentifier: "a",
			wantSecret:     "b",
			wantOK:         true,
		},
		{
			name:   "missing header",
			header: "",
		},
		{
			name:   "wrong scheme",
			header: "Bearer abcdef",
		},
		{
			name:   "malformed base64",
			header: "Basic not-base-64!!!",
		},
		{
			name:   "no separator",
			header: encode("test@user.com"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			identifier, secret, ok := ParseBasicAuth(test.header)
			assert.Equal(t, test.wantOK, ok)
			assert.Equal(t, test.wantIdentifier, identifier)
			assert.Equal(t, test.wantSecret, secret)
		})
	}
}
