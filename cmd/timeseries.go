/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/spf13/cobra"
)

// getTimeseriesCmd returns the timeseries command.
func getTimeseriesCmd() *cobra.Command {
	var (
		q          query.TimeseriesQuery
		start, end string
	)

	tsCmd := &cobra.Command{
		Use:   "timeseries",
		Short: "List measurement timeseries",
		Long: `List measurement timeseries of time-value pairs as JSON lines.

Monitoring features, observed properties and the start date are required.
Observed properties and other attributes use the canonical vocabulary.
Aggregation duration is DAY unless it is NONE.

Examples:
  gnsynth timeseries -m SNOW-S1 -o ACT --start 2020-01-01
  gnsynth timeseries -m SNOW-S1,SNOW-S2 -o ACT,Ag --start 2020-01-01 \
    --end 2020-12-31 --statistic MEAN`,
		Aliases: []string{"ts"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTimeseries(cmd, &q, start, end)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	tsCmd.Flags().StringSliceVarP(
		&q.MonitoringFeature, "monitoring-feature", "m", nil,
		"feature identifiers (required)",
	)
	tsCmd.Flags().StringSliceVarP(
		&q.ObservedProperty, "observed-property", "o", nil,
		"canonical observed properties (required)",
	)
	tsCmd.Flags().StringVar(
		&start, "start", "",
		"start date YYYY-MM-DD (required)",
	)
	tsCmd.Flags().StringVar(
		&end, "end", "",
		"end date YYYY-MM-DD",
	)
	tsCmd.Flags().StringVarP(
		&q.AggregationDuration, "aggregation", "a", "",
		"aggregation duration, DAY or NONE",
	)
	tsCmd.Flags().StringSliceVar(
		&q.Statistic, "statistic", nil,
		"statistics, e.g. MEAN,MAX",
	)
	tsCmd.Flags().StringSliceVar(
		&q.ResultQuality, "quality", nil,
		"result qualities, e.g. VALIDATED",
	)
	tsCmd.Flags().StringSliceVar(
		&q.SamplingMedium, "medium", nil,
		"sampling media, e.g. WATER",
	)

	return tsCmd
}

func runTimeseries(
	cmd *cobra.Command,
	q *query.TimeseriesQuery,
	start, end string,
) error {
	ctx := context.Background()

	var err error
	if start != "" {
		if q.StartDate, err = time.Parse(query.DateFormat, start); err != nil {
			return query.InvalidValueError(query.FieldStartDate, start)
		}
	}
	if end != "" {
		if q.EndDate, err = time.Parse(query.DateFormat, end); err != nil {
			return query.InvalidValueError(query.FieldEndDate, end)
		}
	}

	s, err := newSynthesizer(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	it, err := s.Timeseries(ctx, q)
	if err != nil {
		return err
	}
	defer it.Close()
	return printIterator(ctx, cmd.OutOrStdout(), it)
}
