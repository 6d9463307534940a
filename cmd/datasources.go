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
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getDataSourcesCmd returns the datasources command.
func getDataSourcesCmd() *cobra.Command {
	dsCmd := &cobra.Command{
		Use:   "datasources",
		Short: "List configured data sources",
		Long: `List data sources of ~/.config/gnsynth/datasources.yaml
as JSON lines. Use --sources to show only some of them.

Examples:
  gnsynth datasources
  gnsynth datasources -s Snow,Rivers`,
		Aliases: []string{"ds"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDataSources(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return dsCmd
}

func runDataSources(cmd *cobra.Command) error {
	srcs, err := loadSources()
	if err != nil {
		return err
	}
	if len(srcs) == 0 {
		gn.Warn("No data sources are configured in <em>datasources.yaml</em>")
		return nil
	}
	for _, v := range srcs {
		if err = printJSON(cmd.OutOrStdout(), v.DataSource()); err != nil {
			return err
		}
	}
	return nil
}
