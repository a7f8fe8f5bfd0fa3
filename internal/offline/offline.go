// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package offline

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrNetworkBlocked is returned by every dial, lookup and HTTP request once
// the guard is enforced.
var ErrNetworkBlocked = errors.New("network access blocked: toolbench runs offline")

// =============================================================================
// MODE MANAGEMENT
// =============================================================================

var (
	mu       sync.RWMutex
	enforced bool
	blocked  atomic.Int64

	savedTransport http.RoundTripper
	savedResolver  *net.Resolver
	savedClient    http.RoundTripper
)

// Enforce installs the guard process-wide: http.DefaultTransport,
// http.DefaultClient and net.DefaultResolver refuse every connection.
// It is idempotent. The returned function restores the previous state and
// exists for tests.
func Enforce() (restore func()) {
	mu.Lock()
	defer mu.Unlock()

	if enforced {
		return func() {}
	}

	savedTransport = http.DefaultTransport
	savedClient = http.DefaultClient.Transport
	savedResolver = net.DefaultResolver

	http.DefaultTransport = Transport{}
	http.DefaultClient.Transport = Transport{}
	net.DefaultResolver = Resolver()
	enforced = true

	return release
}

func release() {
	mu.Lock()
	defer mu.Unlock()
	if !enforced {
		return
	}
	http.DefaultTransport = savedTransport
	http.DefaultClient.Transport = savedClient
	net.DefaultResolver = savedResolver
	enforced = false
}

// IsEnforced reports whether the guard is installed.
func IsEnforced() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enforced
}

// Blocked returns how many network attempts the guard has refused.
func Blocked() int64 {
	return blocked.Load()
}

// =============================================================================
// GUARDS
// =============================================================================

// DialContext refuses every connection. Its signature matches
// net.Dialer.DialContext so it can be plugged into transports and resolvers.
func DialContext(_ context.Context, network, address string) (net.Conn, error) {
	blocked.Add(1)
	return nil, &net.OpError{
		Op:  "dial",
		Net: network,
		Err: fmt.Errorf("%s: %w", address, ErrNetworkBlocked),
	}
}

// Resolver returns a resolver whose lookups never leave the process.
func Resolver() *net.Resolver {
	return &net.Resolver{PreferGo: true, Dial: DialContext}
}

// Transport is an http.RoundTripper that fails every request.
type Transport struct{}

// RoundTrip implements http.RoundTripper.
func (Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	blocked.Add(1)
	if req.Body != nil {
		_ = req.Body.Close()
	}
	return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), ErrNetworkBlocked)
}

// =============================================================================
// STATUS DISPLAY
// =============================================================================

// StatusIndicator returns "OFFLINE" when enforced, "" otherwise.
func StatusIndicator() string {
	if IsEnforced() {
		return "OFFLINE"
	}
	return ""
}

// StatusBadge returns "[OFFLINE]" when enforced, "" otherwise.
func StatusBadge() string {
	if IsEnforced() {
		return "[OFFLINE]"
	}
	return ""
}

// Summary describes the guard state in one line for `toolbench version`
// and the status bar.
func Summary() string {
	if !IsEnforced() {
		return "offline guard: not installed"
	}
	n := Blocked()
	if n == 0 {
		return "offline guard: active, no network attempts"
	}
	return fmt.Sprintf("offline guard: active, %d network attempt(s) blocked", n)
}
