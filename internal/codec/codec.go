// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package codec provides symmetric text encoders and decoders.
package codec

import (
	"fmt"
	"sort"
	"sync"
)

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of a decode. Error is empty on success.
type Result struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Error   string `json:"error,omitempty"`
}

func success(output string) Result {
	return Result{Success: true, Output: output}
}

func failure(msg string) Result {
	return Result{Success: false, Output: "", Error: msg}
}

// =============================================================================
// CODEC INTERFACE
// =============================================================================

// Codec is a reversible text encoding.
type Codec interface {
	// Name returns the registry name of the codec.
	Name() string
	// Encode is total: every string has an encoded form.
	Encode(input string) string
	// Decode never panics; failures are reported in the Result.
	Decode(input string) Result
}

// funcCodec adapts a pair of functions to the Codec interface.
type funcCodec struct {
	name   string
	encode func(string) string
	decode func(string) Result
}

func (c funcCodec) Name() string { return c.name }

func (c funcCodec) Encode(input string) string { return c.encode(input) }

func (c funcCodec) Decode(input string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failure(fmt.Sprintf("%v", r))
		}
	}()
	return c.decode(input)
}

// =============================================================================
// REGISTRY
// =============================================================================

var (
	registry   = make(map[string]Codec)
	registryMu sync.RWMutex
)

// Register adds a codec to the registry. Registering a duplicate name fails.
func Register(c Codec) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[c.Name()]; exists {
		return fmt.Errorf("codec %q already registered", c.Name())
	}
	registry[c.Name()] = c
	return nil
}

// Get returns the codec registered under name.
func Get(name string) (Codec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustRegister(c Codec) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

func init() {
	mustRegister(funcCodec{name: NameBase64, encode: EncodeBase64, decode: DecodeBase64})
	mustRegister(funcCodec{name: NameBase64URL, encode: EncodeBase64URL, decode: DecodeBase64URL})
	mustRegister(funcCodec{name: NameURL, encode: EncodeURL, decode: DecodeURL})
	mustRegister(funcCodec{name: NameHex, encode: EncodeHex, decode: DecodeHex})
	mustRegister(funcCodec{name: NameUnicode, encode: EncodeUnicode, decode: DecodeUnicode})
}

// Registry names.
const (
	NameBase64    = "base64"
	NameBase64URL = "base64url"
	NameURL       = "url"
	NameHex       = "hex"
	NameUnicode   = "unicode"
)
