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
	"github.com/gnames/gnsynth/internal/iocatalog"
	"github.com/spf13/cobra"
)

// getVarsCmd returns the vars command.
func getVarsCmd() *cobra.Command {
	varsCmd := &cobra.Command{
		Use:   "vars [ids...]",
		Short: "List canonical observed properties",
		Long: `List canonical observed-property variables of the reference
vocabulary. Without arguments all variables are listed.

Examples:
  gnsynth vars
  gnsynth vars ACT Al`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runVars(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return varsCmd
}

func runVars(cmd *cobra.Command, ids []string) error {
	ctx := context.Background()
	cat, err := iocatalog.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	if err = cat.Initialize(ctx, nil); err != nil {
		return err
	}

	vars, err := cat.ObservedProperties(ctx, ids...)
	if err != nil {
		return err
	}
	for _, v := range vars {
		if err = printJSON(cmd.OutOrStdout(), v); err != nil {
			return err
		}
	}
	return nil
}
