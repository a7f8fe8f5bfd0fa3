// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// codec_cmd.go - encode and decode commands.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/codec"
)

func lookupCodec(name string) (codec.Codec, error) {
	c, ok := codec.Get(strings.ToLower(name))
	if !ok {
		return nil, NewValidationErrorWithExample("codec", name,
			"must be one of "+strings.Join(codec.Names(), ", "), "toolbench encode base64 hello")
	}
	return c, nil
}

func newEncodeCmd(a *App) *cobra.Command {
	var f ioFlags
	cmd := &cobra.Command{
		Use:   "encode <codec> [text...]",
		Short: "Encode text (base64, base64url, url, hex, unicode)",
		Example: `  toolbench encode base64 "hello world"
  echo -n "a b" | toolbench encode url`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := lookupCodec(args[0])
			if err != nil {
				return err
			}
			return a.runTool(cmd, args[1:], &f, "toolbench encode base64 hello", func(input string) (output, error) {
				encoded := c.Encode(input)
				return output{
					Data: codec.Result{Success: true, Output: encoded},
					Text: encoded,
				}, nil
			})
		},
	}
	addIOFlags(cmd, &f)
	return cmd
}

func newDecodeCmd(a *App) *cobra.Command {
	var (
		f    ioFlags
		auto bool
	)
	cmd := &cobra.Command{
		Use:   "decode <codec> [text...]",
		Short: "Decode text, or guess the encoding with --auto",
		Example: `  toolbench decode base64 aGVsbG8=
  toolbench decode --auto 68656c6c6f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if auto {
				return a.runTool(cmd, args, &f, "toolbench decode --auto aGVsbG8=", func(input string) (output, error) {
					return decodeAuto(cmd, input)
				})
			}
			if len(args) == 0 {
				return NewValidationErrorWithExample("codec", "", "missing codec name", "toolbench decode base64 aGVsbG8=")
			}
			c, err := lookupCodec(args[0])
			if err != nil {
				return err
			}
			return a.runTool(cmd, args[1:], &f, "toolbench decode base64 aGVsbG8=", func(input string) (output, error) {
				res := c.Decode(input)
				if !res.Success {
					return output{}, toolError(cmd, res.Error)
				}
				return output{Data: res, Text: res.Output}, nil
			})
		},
	}
	cmd.Flags().BoolVar(&auto, "auto", false, "Try every codec and list plausible decodings")
	addIOFlags(cmd, &f)
	return cmd
}

func decodeAuto(cmd *cobra.Command, input string) (output, error) {
	candidates := codec.Detect(input)
	if len(candidates) == 0 {
		return output{}, toolError(cmd, "no known encoding decodes this input")
	}

	var sb strings.Builder
	for i, c := range candidates {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s %s\n", TitleStyle.Render(c.Codec),
			DimStyle.Render(fmt.Sprintf("(%.0f%%, %s)", c.Confidence*100, c.Reason)))
		sb.WriteString(c.Output)
		sb.WriteString("\n")
	}
	return output{Data: candidates, Text: sb.String(), Copy: candidates[0].Output}, nil
}
