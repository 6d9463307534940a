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
	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/spf13/cobra"
)

// getMappingsCmd returns the mappings command.
func getMappingsCmd() *cobra.Command {
	var (
		attrType  string
		vocabs    []string
		canonical bool
	)

	mappingsCmd := &cobra.Command{
		Use:   "mappings",
		Short: "Query attribute mappings of data sources",
		Long: `Query mappings between vocabularies of data sources and the
canonical vocabulary.

Vocabularies are source vocabularies by default. With --canonical they
are canonical ones, which may be compound ("Al:WATER") and may use the
".*" wildcard for a segment.

Examples:
  gnsynth mappings -s Snow
  gnsynth mappings -s Snow -a OBSERVED_PROPERTY -v acetate
  gnsynth mappings -a OBSERVED_PROPERTY -v 'Al:.*' --canonical`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMappings(cmd, attrType, vocabs, canonical)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	mappingsCmd.Flags().StringVarP(
		&attrType, "attr-type", "a", "",
		"attribute type, e.g. OBSERVED_PROPERTY",
	)
	mappingsCmd.Flags().StringSliceVarP(
		&vocabs, "vocab", "v", nil,
		"vocabularies to look for",
	)
	mappingsCmd.Flags().BoolVar(
		&canonical, "canonical", false,
		"vocabularies are canonical",
	)

	return mappingsCmd
}

func runMappings(
	cmd *cobra.Command,
	attrType string,
	vocabs []string,
	canonical bool,
) error {
	ctx := context.Background()
	s, err := newSynthesizer(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, ds := range s.DataSources() {
		ms, err := s.AttributeMappings(ctx, catalog.MappingFilter{
			DataSourceID:  ds.ID,
			AttrType:      attrType,
			Vocabs:        vocabs,
			FromCanonical: canonical,
		})
		if err != nil {
			return err
		}
		for _, v := range ms {
			if err = printJSON(cmd.OutOrStdout(), v); err != nil {
				return err
			}
		}
	}
	return nil
}
