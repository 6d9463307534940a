package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name  string
		err   error
		code  gn.ErrorCode
		vars  int
		cause bool
	}{
		{
			name:  "connection",
			err:   ConnectionError("localhost", 5432, "gnsynth", "postgres", originalErr),
			code:  errcode.DBConnectionError,
			vars:  5,
			cause: true,
		},
		{
			name: "not connected",
			err:  NotConnectedError(),
			code: errcode.DBNotConnectedError,
		},
		{
			name:  "table check",
			err:   TableCheckError(originalErr),
			code:  errcode.DBTableCheckError,
			cause: true,
		},
		{
			name:  "drop tables",
			err:   DropTableError("data_sources, observed_properties", originalErr),
			code:  errcode.DBDropTableError,
			vars:  1,
			cause: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Len(t, gnErr.Vars, tt.vars)
			if tt.cause {
				assert.ErrorIs(t, gnErr.Err, originalErr)
			}
		})
	}
}
