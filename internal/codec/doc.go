// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package codec provides symmetric text encoders and decoders.
//
// Every codec pairs a total Encode with a Decode that never fails loudly:
// malformed input is reported through Result rather than an error value or
// a panic. Decode(Encode(s)) returns s for any valid UTF-8 string.
//
// # Key Types
//
//   - Result: Outcome of a decode (Success, Output, Error)
//   - Codec: Named encoder/decoder pair
//   - Candidate: Ranked guess produced by Detect
//
// # Supported Encodings
//
//   - base64: Standard alphabet, forgiving decode
//   - base64url: URL-safe alphabet, unpadded encode
//   - url: Percent-encoding of UTF-8 (URI component rules)
//   - hex: Lowercase hex of UTF-8 bytes
//   - unicode: \uHHHH and \u{H+} escapes; decode also accepts &#D; and &#xH;
//
// # Usage
//
//	res := codec.DecodeHex("48656c6c6f")
//	if res.Success {
//		fmt.Println(res.Output) // Hello
//	}
//
//	c, _ := codec.Get("base64url")
//	encoded := c.Encode("hello")
//
//	for _, cand := range codec.Detect(input) {
//		fmt.Printf("%s (%.2f): %s\n", cand.Codec, cand.Confidence, cand.Output)
//	}
package codec
