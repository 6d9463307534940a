package iofs

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		vars []any
		msg  string
	}{
		{
			name: "create dir",
			err:  CreateDirError("/tmp/gnsynth", originalErr),
			code: errcode.CreateDirError,
			vars: []any{"/tmp/gnsynth"},
			msg:  "Cannot create /tmp/gnsynth",
		},
		{
			name: "copy file",
			err:  CopyFileError("/tmp/config.yaml", originalErr),
			code: errcode.CopyFileError,
			vars: []any{"/tmp/config.yaml"},
			msg:  "config.yaml",
		},
		{
			name: "read file",
			err:  ReadFileError("snow_mapping.csv", originalErr),
			code: errcode.ReadFileError,
			vars: []any{"snow_mapping.csv"},
			msg:  "Cannot read",
		},
		{
			name: "remote file",
			err:  RemoteFileError("gs://bucket/maps", originalErr),
			code: errcode.RemoteFileError,
			vars: []any{"gs://bucket/maps"},
			msg:  "cloud storage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.True(t, errors.As(tt.err, &gnErr))
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Equal(t, tt.vars, gnErr.Vars)
			assert.ErrorIs(t, gnErr.Err, originalErr)

			msg := fmt.Sprintf(gnErr.Msg, gnErr.Vars...)
			assert.Contains(t, msg, tt.msg)
			// wrapped error names the calling function
			assert.True(t, strings.HasPrefix(gnErr.Err.Error(), "from "),
				gnErr.Err.Error())
			assert.Contains(t, gnErr.Err.Error(), "TestErrors")
		})
	}
}
