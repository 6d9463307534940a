package plugin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/pkg/errcode"
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/gnames/gnsynth/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listNothing(
	_ context.Context,
	_ *plugin.Access,
	_ *query.Translated,
) (plugin.Cursor, error) {
	return plugin.SliceCursor(nil), nil
}

func getNothing(
	_ context.Context,
	_ *plugin.Access,
	_ *query.Translated,
) (model.Object, error) {
	return nil, nil
}

func newPlugin(id, prefix string, handlers ...plugin.Handler) plugin.Plugin {
	ds := model.DataSource{ID: id, Name: id, IDPrefix: prefix}
	return plugin.New(ds, nil, handlers...)
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		msg            string
		list           plugin.ListFunc
		get            plugin.GetFunc
		lister, getter bool
	}{
		{"both", listNothing, getNothing, true, true},
		{"list", listNothing, nil, true, false},
		{"get", nil, getNothing, false, true},
		{"none", nil, nil, false, false},
	}

	for _, v := range tests {
		h := plugin.NewHandler(model.MonitoringFeatureType, v.list, v.get)
		assert.Equal(t, model.MonitoringFeatureType, h.ModelType(), v.msg)
		_, ok := h.(plugin.Lister)
		assert.Equal(t, v.lister, ok, v.msg)
		_, ok = h.(plugin.Getter)
		assert.Equal(t, v.getter, ok, v.msg)
	}
}

func TestRegister(t *testing.T) {
	assert := assert.New(t)
	r := plugin.NewRegistry()

	mf := plugin.NewHandler(model.MonitoringFeatureType, listNothing, getNothing)
	ts := plugin.NewHandler(model.TimeseriesType, listNothing, nil)
	err := r.Register(newPlugin("Alpha", "A", mf, ts))
	require.NoError(t, err)
	err = r.Register(newPlugin("NoViews", "N"))
	require.NoError(t, err)

	assert.Equal(2, r.Len())
	ids := []string{}
	for _, p := range r.Plugins() {
		ids = append(ids, p.DataSource().ID)
	}
	assert.Equal([]string{"Alpha", "NoViews"}, ids)

	p, ok := r.PluginByPrefix("A")
	assert.True(ok)
	assert.Equal("Alpha", p.DataSource().ID)
	_, ok = r.Plugin("Beta")
	assert.False(ok)

	_, ok = r.Lister("Alpha", model.TimeseriesType)
	assert.True(ok)
	_, ok = r.Getter("Alpha", model.TimeseriesType)
	assert.False(ok)
	_, ok = r.Getter("Alpha", model.MonitoringFeatureType)
	assert.True(ok)
	_, ok = r.Lister("NoViews", model.MonitoringFeatureType)
	assert.False(ok)
}

func TestRegisterErrors(t *testing.T) {
	mf := plugin.NewHandler(model.MonitoringFeatureType, listNothing, nil)
	tests := []struct {
		msg  string
		p    plugin.Plugin
		code gn.ErrorCode
	}{
		{"no id", newPlugin("", "X"), errcode.PluginMetadataError},
		{"no prefix", newPlugin("Beta", ""), errcode.PluginMetadataError},
		{"dup id", newPlugin("Alpha", "B"), errcode.PluginDuplicateError},
		{"dup prefix", newPlugin("Beta", "A"), errcode.PluginDuplicateError},
		{"dup handler", newPlugin("Beta", "B", mf, mf), errcode.PluginDuplicateError},
	}

	for _, v := range tests {
		r := plugin.NewRegistry()
		require.NoError(t, r.Register(newPlugin("Alpha", "A")))

		err := r.Register(v.p)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Equal(t, 1, r.Len(), v.msg)
		_, ok := r.Plugin("Beta")
		assert.False(t, ok, v.msg)
	}
}

func TestSliceCursor(t *testing.T) {
	ctx := context.Background()
	objs := []model.Object{
		&model.MonitoringFeature{ID: "A-1"},
		&model.MonitoringFeature{ID: "A-2"},
	}
	c := plugin.SliceCursor(objs, "skipped row 3")
	assert.Nil(t, c.Warnings())

	var ids []string
	for {
		obj, ok, err := c.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		ids = append(ids, obj.ObjectID())
	}
	assert.Equal(t, []string{"A-1", "A-2"}, ids)
	assert.Equal(t, []string{"skipped row 3"}, c.Warnings())
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestCursorError(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")
	c := plugin.NewCursor(
		func(yield func(model.Object, error) bool) {
			if !yield(&model.MonitoringFeature{ID: "E-1"}, nil) {
				return
			}
			yield(nil, errBoom)
		},
		nil,
	)
	defer c.Close()

	obj, ok, err := c.Next(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "E-1", obj.ObjectID())

	_, ok, err = c.Next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, errBoom)

	_, ok, err = c.Next(ctx)
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Nil(t, c.Warnings())
}

func TestCursorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := plugin.SliceCursor([]model.Object{&model.MonitoringFeature{ID: "A-1"}})
	cancel()
	_, ok, err := c.Next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCursorPanic(t *testing.T) {
	ctx := context.Background()
	c := plugin.NewCursor(
		func(yield func(model.Object, error) bool) {
			if !yield(&model.MonitoringFeature{ID: "P-1"}, nil) {
				return
			}
			var m map[string]int
			m["boom"]++
		},
		nil,
	)
	defer c.Close()

	obj, ok, err := c.Next(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "P-1", obj.ObjectID())

	_, ok, err = c.Next(ctx)
	assert.False(t, ok)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.PluginPanicError, gnErr.Code)

	_, ok, err = c.Next(ctx)
	assert.False(t, ok)
	assert.NoError(t, err)
	require.NoError(t, c.Close())
}
