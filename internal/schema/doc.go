// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package schema validates JSON or YAML data against a JSON Schema given
// as JSON or YAML. Both inputs are format-detected. Schemas default to
// draft-07 with format assertion on. Refs within the schema resolve;
// refs to any other document are refused, so validation never loads
// anything.
package schema
