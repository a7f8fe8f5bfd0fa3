// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cron validates cron expressions and explains them in English.
//
// Validation is structural only: five or six fields, and a restricted
// character set in the first five. Descriptions come from an Explainer,
// by default a verbose 12-hour English generator. Nothing is scheduled.
//
// # Key Types
//
//   - ParseResult: Valid flag, Explanation, Parts and Error
//   - Parser: Validation plus an Explainer
//   - Explainer: Expression-to-prose collaborator
//
// # Usage
//
//	res := cron.Parse("*/15 9-17 * * 1-5")
//	if res.Valid {
//		fmt.Println(*res.Explanation)
//	}
package cron
