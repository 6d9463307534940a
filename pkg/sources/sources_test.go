package sources_test

import (
	"testing"

	"github.com/gnames/gnsynth/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSources() []sources.DataSourceConfig {
	return []sources.DataSourceConfig{
		{ID: "Snow", Name: "Snow Survey", IDPrefix: "SNOW", Location: "/data/snow"},
		{ID: "Rivers", IDPrefix: "RIV", Location: "gs://bucket/rivers"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		ds       []sources.DataSourceConfig
		hasErr   bool
		errMsg   string
		warnings int
	}{
		{name: "empty", ds: nil},
		{name: "valid", ds: testSources(), warnings: 1},
		{
			name:   "missing id",
			ds:     []sources.DataSourceConfig{{IDPrefix: "A", Location: "/a"}},
			hasErr: true, errMsg: "id is required",
		},
		{
			name:   "missing prefix",
			ds:     []sources.DataSourceConfig{{ID: "A", Location: "/a"}},
			hasErr: true, errMsg: "id_prefix is required",
		},
		{
			name:   "prefix with dash",
			ds:     []sources.DataSourceConfig{{ID: "A", IDPrefix: "A-B", Location: "/a"}},
			hasErr: true, errMsg: "cannot contain '-'",
		},
		{
			name:   "missing location",
			ds:     []sources.DataSourceConfig{{ID: "A", IDPrefix: "A"}},
			hasErr: true, errMsg: "location",
		},
		{
			name: "remote mapping dir",
			ds: []sources.DataSourceConfig{{
				ID: "A", Name: "A", IDPrefix: "A", Location: "/a",
				MappingDir: "gs://bucket/maps",
			}},
			hasErr: true, errMsg: "local directory",
		},
		{
			name: "duplicate id",
			ds: []sources.DataSourceConfig{
				{ID: "A", Name: "A", IDPrefix: "A", Location: "/a"},
				{ID: "A", Name: "A", IDPrefix: "B", Location: "/b"},
			},
			hasErr: true, errMsg: "duplicate id 'A'",
		},
		{
			name: "duplicate prefix",
			ds: []sources.DataSourceConfig{
				{ID: "A", Name: "A", IDPrefix: "A", Location: "/a"},
				{ID: "B", Name: "B", IDPrefix: "A", Location: "/b"},
			},
			hasErr: true, errMsg: "duplicate id_prefix 'A'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sources.SourcesConfig{DataSources: tt.ds}
			err := cfg.Validate()
			if tt.hasErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Len(t, cfg.Warnings, tt.warnings)
		})
	}
}

func TestDataSource(t *testing.T) {
	ds := testSources()
	assert.Equal(t, "Snow Survey", ds[0].DataSource().Name)
	assert.Equal(t, "Rivers", ds[1].DataSource().Name)
	assert.Equal(t, "RIV", ds[1].DataSource().IDPrefix)
	assert.True(t, sources.IsRemote(ds[1].Location))
	assert.False(t, sources.IsRemote(ds[0].Location))
}

func TestFilter(t *testing.T) {
	ds := testSources()

	res, warns, err := sources.Filter(ds, nil)
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Empty(t, warns)

	res, warns, err = sources.Filter(ds, []string{"Rivers", "Lakes"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Rivers", res[0].ID)
	assert.Equal(t, []string{"source ID Lakes not found in configuration"}, warns)

	_, _, err = sources.Filter(ds, []string{"Lakes"})
	assert.Error(t, err)
}
