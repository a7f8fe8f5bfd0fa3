// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package offline enforces the no-network guarantee.
//
// Enforce swaps http.DefaultTransport, http.DefaultClient and
// net.DefaultResolver for guards that refuse every connection, and counts
// each refusal. The CLI calls it before any command runs, so no library
// reached through the default client or resolver can open a socket.
//
// # Key Types
//
//   - Transport: http.RoundTripper that fails every request
//   - DialContext: dial function that fails every connection
//
// # Usage
//
//	offline.Enforce()
//	_, err := http.Get("https://example.com") // wraps ErrNetworkBlocked
//	fmt.Println(offline.Summary())
//
// PrivacyMarkdown and VerifyMarkdown hold the guarantee and verification
// pages shown by `toolbench privacy` and the shell.
package offline
