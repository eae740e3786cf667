// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "deadline",
			err:  &url.Error{Op: "Get", URL: "https://auth.example.com", Err: context.DeadlineExceeded},
			want: Timeout,
		},
		{
			name: "client timeout text",
			err:  errors.New("Client.Timeout exceeded while awaiting headers"),
			want: Timeout,
		},
		{
			name: "canceled",
			err:  fmt.Errorf("fetch: %w", context.Canceled),
			want: Canceled,
		},
		{
			name: "dns",
			err:  &url.Error{Op: "Get", URL: "https://nope.invalid", Err: &net.DNSError{Err: "no such host", Name: "nope.invalid"}},
			want: DNS,
		},
		{
			name: "refused",
			err: &url.Error{Op: "Get", URL: "http://127.0.0.1:1", Err: &net.OpError{
				Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
			}},
			want: ConnectionRefused,
		},
		{
			name: "tls text",
			err:  errors.New("remote error: tls: handshake failure"),
			want: TLS,
		},
		{
			name: "other",
			err:  errors.New("unsupported protocol scheme \"\""),
			want: Generic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "auth.example.com:8443", ExtractHostFromURL("https://auth.example.com:8443/v1/user/info"))
	assert.Equal(t, "server", ExtractHostFromURL("/relative"))
	assert.Equal(t, "server", ExtractHostFromURL("://bad"))
}

func TestShowNetworkErrorWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	dnsErr := &net.DNSError{Err: "no such host", Name: "nope.invalid"}
	ShowNetworkError(&buf, dnsErr, "checking your session", "nope.invalid")
	assert.Contains(t, buf.String(), "Unable to look up nope.invalid")

	buf.Reset()
	ShowStatusHint(&buf, 503, "auth.example.com")
	assert.Contains(t, buf.String(), "auth.example.com encountered an internal error")
}
