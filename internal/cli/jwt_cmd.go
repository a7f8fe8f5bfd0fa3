// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// jwt_cmd.go - jwt command.

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/convert"
	"github.com/jeranaias/toolbench/internal/epoch"
	"github.com/jeranaias/toolbench/internal/jwt"
)

// jwtData is the --json payload of the jwt command.
type jwtData struct {
	jwt.Result
	Expired bool            `json:"expired"`
	Claims  []jwt.ClaimTime `json:"claims,omitempty"`
}

func newJWTCmd(a *App) *cobra.Command {
	var f ioFlags
	cmd := &cobra.Command{
		Use:   "jwt [token]",
		Short: "Decode a JWT header and payload (the signature is not verified)",
		Example: `  toolbench jwt eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig
  pbpaste | toolbench jwt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTool(cmd, args, &f, "toolbench jwt <token>", func(input string) (output, error) {
				return decodeJWT(cmd, input, time.Now())
			})
		},
	}
	addIOFlags(cmd, &f)
	return cmd
}

func decodeJWT(cmd *cobra.Command, token string, now time.Time) (output, error) {
	res := jwt.Decode(token)
	if res.Error != nil {
		return output{}, toolError(cmd, *res.Error)
	}
	if !res.Valid {
		return output{}, ErrMissingInput("toolbench jwt <token>")
	}

	d := res.Decoded
	data := jwtData{
		Result:  res,
		Expired: jwt.IsExpired(d.Payload, now),
		Claims:  jwt.ClaimTimes(d.Payload, now),
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Header"))
	sb.WriteString("\n")
	sb.WriteString(prettyJSON(d.HeaderJSON))
	sb.WriteString("\n\n")
	sb.WriteString(TitleStyle.Render("Payload"))
	if data.Expired {
		sb.WriteString(" " + RenderStatus("expired"))
	}
	sb.WriteString("\n")
	sb.WriteString(prettyJSON(d.PayloadJSON))
	sb.WriteString("\n")

	if len(data.Claims) > 0 {
		sb.WriteString("\n")
		for _, c := range data.Claims {
			line := fmt.Sprintf("%s %s (%s)", RenderLabel(c.Claim), c.Time.UTC().Format(time.RFC1123),
				relative(c.Time, now))
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(TitleStyle.Render("Signature"))
	sb.WriteString("\n")
	sb.WriteString(d.Signature)
	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render("Signature is shown as-is and not verified."))

	return output{Data: data, Text: sb.String(), Copy: prettyJSON(d.PayloadJSON)}, nil
}

// prettyJSON re-indents raw JSON text, keeping key order. The input is
// returned unchanged if it does not parse.
func prettyJSON(raw string) string {
	res := convert.PrettifyJSON(raw, convert.DefaultIndent)
	if !res.Success {
		return raw
	}
	return res.Output
}

func relative(t, now time.Time) string {
	c := &epoch.Converter{Clock: func() time.Time { return now }}
	return c.RelativeTime(float64(t.UnixMilli()))
}
