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

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/spf13/cobra"
)

// getFeaturesCmd returns the features command.
func getFeaturesCmd() *cobra.Command {
	var q query.MonitoringFeatureQuery

	featuresCmd := &cobra.Command{
		Use:   "features",
		Short: "List monitoring features",
		Long: `List monitoring features of all data sources as JSON lines,
or retrieve one feature by its identifier.

Identifiers have the form {id_prefix}-{id}, for example SNOW-S1.
Problems of data sources are reported to STDERR and do not stop the
output of other sources.

Examples:
  gnsynth features
  gnsynth features -s Snow -t point
  gnsynth features -p SNOW-W1
  gnsynth features --id SNOW-S1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFeatures(cmd, &q)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	featuresCmd.Flags().StringVar(
		&q.ID, "id", "",
		"retrieve one feature by its identifier",
	)
	featuresCmd.Flags().StringVarP(
		&q.FeatureType, "feature-type", "t", "",
		"feature type, e.g. WATERSHED or POINT",
	)
	featuresCmd.Flags().StringSliceVarP(
		&q.MonitoringFeature, "monitoring-feature", "m", nil,
		"feature identifiers",
	)
	featuresCmd.Flags().StringSliceVarP(
		&q.ParentFeature, "parent-feature", "p", nil,
		"identifiers of parent features",
	)

	return featuresCmd
}

func runFeatures(cmd *cobra.Command, q *query.MonitoringFeatureQuery) error {
	ctx := context.Background()
	s, err := newSynthesizer(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if q.ID != "" {
		res, err := s.MonitoringFeature(ctx, q)
		if err != nil {
			return err
		}
		if res.Data != nil {
			if err = printJSON(cmd.OutOrStdout(), res.Data); err != nil {
				return err
			}
		} else if len(res.Messages) == 0 {
			gn.Warn("Feature <em>%s</em> is not found", q.ID)
		}
		printMessages(res.Messages)
		return nil
	}

	it, err := s.MonitoringFeatures(ctx, q)
	if err != nil {
		return err
	}
	defer it.Close()
	return printIterator(ctx, cmd.OutOrStdout(), it)
}
