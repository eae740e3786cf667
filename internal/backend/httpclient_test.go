// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRequestSendsConfig(t *testing.T) {
	var gotMethod, gotAuth, gotCT, gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"id","username":"username"}`))
	}))
	defer srv.Close()

	cfg := DefaultRequestConfig()
	cfg.Method = "post"
	cfg.Headers["Authorization"] = "Bearer token"

	resp, err := New(WithUserAgent("test-agent")).Request(context.Background(), srv.URL, cfg)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer token", gotAuth)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "application/json, */*", gotAccept)
	assert.Equal(t, "test-agent", gotUA)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode())
	body, err := resp.JSON()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "id", "username": "username"}, body)
}

func TestHTTPRequestEmptyMethodDefaultsToGet(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New().Request(context.Background(), srv.URL, RequestConfig{})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
}

func TestHTTPRequestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp, err := New().Request(context.Background(), url, DefaultRequestConfig())
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestHTTPRequestInvalidURL(t *testing.T) {
	_, err := New().Request(context.Background(), "://missing-scheme", DefaultRequestConfig())
	assert.Error(t, err)
}

func TestResponseJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    any
		wantErr bool
	}{
		{name: "object", body: `{"Hello":"World"}`, want: map[string]any{"Hello": "World"}},
		{name: "string literal", body: `"ok"`, want: "ok"},
		{name: "surrounding whitespace", body: " \n[1,2]\n", want: []any{float64(1), float64(2)}},
		{name: "plain text", body: "Not JSON", wantErr: true},
		{name: "empty", body: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResponse(http.StatusOK, []byte(tt.body)).JSON()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentialsModes(t *testing.T) {
	newServer := func(seen *[]string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie("sid"); err == nil {
				*seen = append(*seen, c.Value)
			} else {
				*seen = append(*seen, "")
			}
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc", Path: "/"})
			_, _ = w.Write([]byte(`{}`))
		}))
	}

	tests := []struct {
		name string
		mode Credentials
		want []string
	}{
		{name: "include", mode: CredentialsInclude, want: []string{"", "abc"}},
		{name: "same-origin", mode: CredentialsSameOrigin, want: []string{"", "abc"}},
		{name: "omit", mode: CredentialsOmit, want: []string{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []string
			srv := newServer(&seen)
			defer srv.Close()

			h := New()
			cfg := DefaultRequestConfig()
			cfg.Credentials = tt.mode

			for i := 0; i < 2; i++ {
				_, err := h.Request(context.Background(), srv.URL, cfg)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestCredentialsValid(t *testing.T) {
	assert.True(t, CredentialsInclude.Valid())
	assert.True(t, CredentialsSameOrigin.Valid())
	assert.True(t, CredentialsOmit.Valid())
	assert.False(t, Credentials("always").Valid())
}

func TestRequestConfigClone(t *testing.T) {
	base := DefaultRequestConfig()
	clone := base.Clone()
	clone.Headers["Authorization"] = "Bearer x"

	_, ok := base.Headers["Authorization"]
	assert.False(t, ok)
	assert.Equal(t, base.Method, clone.Method)
}

func TestHTTPRequestBodyTooLarge(t *testing.T) {
	big := `{"pad":"` + strings.Repeat("x", maxBodySize) + `"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(big))
	}))
	defer srv.Close()

	resp, err := New().Request(context.Background(), srv.URL, DefaultRequestConfig())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	_, err = resp.JSON()
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestWithHTTPClientDoesNotModifyCallerClient(t *testing.T) {
	caller := &http.Client{Timeout: 30 * time.Second}
	h := New(WithHTTPClient(caller), WithTimeout(2*time.Second))

	assert.Equal(t, 30*time.Second, caller.Timeout)
	assert.Equal(t, 2*time.Second, h.client.Timeout)
	assert.NotSame(t, caller, h.client)
}

func TestWithTimeoutBoundsRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(WithTimeout(50*time.Millisecond)).Request(context.Background(), srv.URL, DefaultRequestConfig())
	require.Error(t, err)
	var netErr interface{ Timeout() bool }
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}
