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
	"github.com/gnames/gnsynth/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command)

func sourcesFlag(cmd *cobra.Command) {
	ids, _ := cmd.Flags().GetStringSlice("sources")
	if len(ids) > 0 {
		opts = append(opts, config.OptDataSourceIDs(ids))
	}
}

func metricsFlag(cmd *cobra.Command) {
	hasMetrics, _ := cmd.Flags().GetBool("metrics")
	if hasMetrics {
		opts = append(opts, config.OptWithMetrics(true))
	}
}

func prettyFlag(cmd *cobra.Command) {
	isPretty, _ := cmd.Flags().GetBool("pretty")
	if isPretty {
		opts = append(opts, config.OptWithPrettyOutput(true))
	}
}
