// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly explanations for failed requests
// to the auth endpoint.
package httperrors

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Category is a coarse classification of a transport failure.
type Category string

const (
	Timeout           Category = "timeout"
	DNS               Category = "dns"
	ConnectionRefused Category = "connection_refused"
	TLS               Category = "tls"
	Canceled          Category = "canceled"
	Generic           Category = "generic"
)

// Classify inspects err and returns its category.
func Classify(err error) Category {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return Canceled
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isSSLError(err):
		return TLS
	default:
		return Generic
	}
}

// ShowNetworkError writes a user-friendly message for a transport failure to w.
// host names the endpoint in the message.
func ShowNetworkError(w io.Writer, err error, action, host string) {
	switch Classify(err) {
	case Timeout:
		showTimeoutError(w, action)
	case DNS:
		showDNSError(w, action, host)
	case ConnectionRefused:
		showConnectionRefusedError(w, action)
	case TLS:
		showSSLError(w, action)
	case Canceled:
		fmt.Fprint(w, pterm.Warning.Sprintf("Request canceled while %s\n", action))
	default:
		showGenericError(w, action, host, err.Error())
	}
}

// ShowStatusHint prints a hint for a rejected HTTP status.
func ShowStatusHint(w io.Writer, status int, host string) {
	switch {
	case status == 401 || status == 403:
		fmt.Fprintln(w, "The endpoint did not accept your session.")
		fmt.Fprintln(w, "  • Run 'checkauth login' to store a bearer token")
		fmt.Fprintln(w, "  • Or pass one with --header \"Authorization: Bearer <token>\"")
	case status == 404:
		fmt.Fprintf(w, "Nothing is served at this path on %s. Check the auth URL.\n", host)
	case status >= 500:
		fmt.Fprintf(w, "%s encountered an internal error. This is not a problem with your setup.\n", host)
		fmt.Fprintln(w, "Please try again in a few minutes.")
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	var certErr *tls.CertificateVerificationError
	var unknownAuth x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &unknownAuth) || errors.As(err, &hostErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// showTimeoutError displays a user-friendly timeout error message.
func showTimeoutError(w io.Writer, action string) {
	fmt.Fprintf(w, "⏱️  Connection timeout while %s\n", action)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The server took too long to respond. This could mean:")
	fmt.Fprintln(w, "  • Slow internet connection")
	fmt.Fprintln(w, "  • Server is under heavy load")
	fmt.Fprintln(w, "  • Network firewall is blocking the connection")
	fmt.Fprintln(w)
}

// showDNSError displays a user-friendly DNS error message.
func showDNSError(w io.Writer, action, host string) {
	fmt.Fprintf(w, "🌐 Cannot resolve server address while %s\n", action)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Unable to look up %s. Please check:\n", host)
	fmt.Fprintln(w, "  • The auth URL is spelled correctly")
	fmt.Fprintln(w, "  • Your internet connection is working")
	fmt.Fprintln(w, "  • DNS settings are correct")
	fmt.Fprintln(w)
}

// showConnectionRefusedError displays a user-friendly connection refused error message.
func showConnectionRefusedError(w io.Writer, action string) {
	fmt.Fprintf(w, "🚫 Connection refused while %s\n", action)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The server is not accepting connections. This could mean:")
	fmt.Fprintln(w, "  • The service is temporarily down")
	fmt.Fprintln(w, "  • Firewall is blocking the connection")
	fmt.Fprintln(w, "  • Wrong server address or port")
	fmt.Fprintln(w)
}

// showSSLError displays a user-friendly SSL/TLS error message.
func showSSLError(w io.Writer, action string) {
	fmt.Fprintf(w, "🔒 Secure connection failed while %s\n", action)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cannot establish a secure HTTPS connection. This could mean:")
	fmt.Fprintln(w, "  • SSL/TLS certificate issue")
	fmt.Fprintln(w, "  • Network proxy interfering with HTTPS")
	fmt.Fprintln(w, "  • System clock is incorrect")
	fmt.Fprintln(w)
}

// showGenericError displays a generic error message for unrecognized errors.
func showGenericError(w io.Writer, action, host, errDetails string) {
	fmt.Fprintf(w, "❌ Cannot connect to %s while %s\n", host, action)
	fmt.Fprintln(w)

	// Show abbreviated error details for debugging
	if errDetails != "" {
		shortErr := errDetails
		if len(shortErr) > 100 {
			shortErr = shortErr[:100] + "..."
		}
		if msg := pterm.Debug.Sprintf("Technical details: %s\n", shortErr); msg != "" {
			fmt.Fprint(w, msg)
			fmt.Fprintln(w)
		}
	}
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
