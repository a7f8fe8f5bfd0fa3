// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// epoch_cmd.go - epoch and date commands.

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/epoch"
)

// converterFor returns a converter in the named zone, or the local zone
// when tz is empty.
func converterFor(tz string) (*epoch.Converter, error) {
	c := epoch.New()
	if tz == "" {
		return c, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, NewValidationErrorWithExample("--tz", tz, "unknown time zone", "--tz Europe/Berlin")
	}
	c.Location = loc
	return c, nil
}

func newEpochCmd(a *App) *cobra.Command {
	var (
		f    ioFlags
		unit string
		tz   string
	)
	cmd := &cobra.Command{
		Use:   "epoch [timestamp]",
		Short: "Convert a Unix timestamp to dates, or show the current time",
		Example: `  toolbench epoch
  toolbench epoch 1700000000
  toolbench epoch 1700000000123 --unit ms --tz UTC`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := converterFor(tz)
			if err != nil {
				return err
			}
			if len(args) == 0 && f.File == "" && (a.StdinIsTerminal == nil || a.StdinIsTerminal()) {
				now := conv.Now()
				text := fmt.Sprintf("%s %d\n%s %d", RenderLabel("Seconds"), now.Seconds,
					RenderLabel("Milliseconds"), now.Milliseconds)
				return a.emit(cmd, output{Data: now, Text: text, Copy: strconv.FormatInt(now.Seconds, 10)})
			}

			unitName := unit
			if unitName == "" {
				unitName = a.Config.Format.EpochUnit
			}
			return a.runTool(cmd, args, &f, "toolbench epoch 1700000000", func(input string) (output, error) {
				value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
				if err != nil {
					return output{}, NewValidationError("timestamp", input, "not a number")
				}
				u, err := epoch.ParseUnit(unitName, value)
				if err != nil {
					return output{}, NewValidationErrorWithExample("--unit", unitName, err.Error(), "--unit seconds")
				}
				res := conv.EpochToDate(value, u)
				if !res.Valid {
					return output{}, toolError(cmd, res.Error)
				}
				text := strings.Join([]string{
					RenderLabel("Unit") + " " + string(u),
					RenderLabel("Local") + " " + res.Local + " (" + res.Timezone + ")",
					RenderLabel("UTC") + " " + res.UTC,
					RenderLabel("ISO 8601") + " " + res.ISO,
					RenderLabel("Relative") + " " + res.Relative,
				}, "\n")
				return output{Data: res, Text: text, Copy: res.ISO}, nil
			})
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "", "seconds, milliseconds or auto (default from config)")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA time zone for the local rendering")
	addIOFlags(cmd, &f)
	return cmd
}

func newDateCmd(a *App) *cobra.Command {
	var (
		f  ioFlags
		tz string
	)
	cmd := &cobra.Command{
		Use:   "date <date>",
		Short: "Convert a date string to Unix seconds and milliseconds",
		Example: `  toolbench date 2024-01-15
  toolbench date "2024-01-15 10:30" --tz America/New_York
  toolbench date "Mon, 02 Jan 2006 15:04:05 GMT"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := converterFor(tz)
			if err != nil {
				return err
			}
			return a.runTool(cmd, args, &f, "toolbench date 2024-01-15", func(input string) (output, error) {
				res := conv.DateToEpoch(input)
				if !res.Valid {
					return output{}, toolError(cmd, res.Error)
				}
				text := fmt.Sprintf("%s %d\n%s %d", RenderLabel("Seconds"), res.Seconds,
					RenderLabel("Milliseconds"), res.Milliseconds)
				return output{Data: res, Text: text, Copy: strconv.FormatInt(res.Seconds, 10)}, nil
			})
		},
	}
	cmd.Flags().StringVar(&tz, "tz", "", "IANA time zone for dates without an offset")
	addIOFlags(cmd, &f)
	return cmd
}
