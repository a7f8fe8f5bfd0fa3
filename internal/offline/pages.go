// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package offline

// PrivacyMarkdown is the privacy guarantee page.
const PrivacyMarkdown = `# Privacy Guarantee

toolbench treats privacy as a technical guarantee, not a policy statement.

**Your data never leaves this process.** This is enforced by code, not promises.

## Zero Network Traffic

- The process replaces the default HTTP transport and DNS resolver before any command runs
- Every dial, lookup and HTTP request fails with "network access blocked"
- No analytics, telemetry, update checks or crash reporting
- No remote schemas: a JSON Schema ` + "`$ref`" + ` to another document is refused

## Local-Only Execution

- Every tool is a pure function over the text you give it
- No background services and no cloud APIs
- Nothing you type is written to disk; the config file stores preferences only
- Works the same with the network cable unplugged

## No Accounts, No Tracking

- No login, registration or API keys
- No identifiers, cookies or usage statistics

## Why This Matters

Pasting API keys, JWTs, configuration files or internal code into online
tools means trusting a third party with them. toolbench makes it
technically impossible for that data to leave your machine.
`

// VerifyMarkdown explains how to check the guarantee independently.
const VerifyMarkdown = `# How to Verify

Don't trust us. Verify it yourself.

## Method 1: Watch the Sockets

Run a tool while tracing network system calls:

` + "```" + `
strace -f -e trace=network toolbench decode base64 aGVsbG8=
` + "```" + `

Only local sockets (such as the terminal) should appear. No ` + "`connect`" + ` to
a remote address.

## Method 2: Offline Test

1. Disconnect from the network, or run inside ` + "`unshare -n`" + `
2. Use every tool: decode, convert, diff, jwt, epoch, cron, regex, schema
3. Everything works normally

## Method 3: Check the Guard

` + "```" + `
toolbench version
` + "```" + `

prints the guard state and how many network attempts were blocked.

## Method 4: Inspect the Source

Search the source for ` + "`net.Dial`" + `, ` + "`http.Get`" + ` and ` + "`http.Client`" + `.
The only network code is the guard in internal/offline, which refuses
every connection.

## Remember

Trust should always be verified. If you find a way around the guard,
report it so it can be fixed.
`
