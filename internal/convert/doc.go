// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package convert transforms structured data between JSON, YAML and CSV.
//
// Documents are held as ordered yaml.Node trees, never Go maps, so object
// key order is preserved through every conversion. JSON output follows the
// ECMAScript serializer (shortest numbers, no HTML escaping); YAML output is
// block style with anchors expanded and no line wrapping.
//
// # Key Types
//
//   - Result: Outcome of a conversion (Success, Output, Error)
//   - Format: json, yaml or csv
//   - Options: Indent, Delimiter, Header
//   - Detected: Input parsed by auto-detection
//
// # Usage
//
//	res := convert.JSONToYAML(`{"b":1,"a":[true,null]}`, 2)
//	if res.Success {
//		fmt.Print(res.Output)
//	}
//
//	res = convert.CSVToJSON("name,age\nAlice,30", ",", true)
//
//	res = convert.Query(input, "items[?price > `10`].name")
package convert
