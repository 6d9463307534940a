package plugin

import (
	"github.com/gnames/gnsynth/pkg/model"
)

type handlerKey struct {
	sourceID  string
	modelType model.Type
}

// Registry keeps plugins in registration order and their handlers by
// data source and synthesis model.
type Registry struct {
	plugins  []Plugin
	byID     map[string]Plugin
	byPrefix map[string]Plugin
	handlers map[handlerKey]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[string]Plugin),
		byPrefix: make(map[string]Plugin),
		handlers: make(map[handlerKey]Handler),
	}
}

// Register adds a plugin. A plugin without ID or prefix, a plugin that
// repeats an ID or a prefix, or a plugin with two handlers of the same
// model is rejected and the registry stays unchanged.
func (r *Registry) Register(p Plugin) error {
	ds := p.DataSource()
	if ds.ID == "" {
		return MetadataError(ds.Name, "id")
	}
	if ds.IDPrefix == "" {
		return MetadataError(ds.ID, "id_prefix")
	}
	if _, ok := r.byID[ds.ID]; ok {
		return DuplicateError("id", ds.ID)
	}
	if _, ok := r.byPrefix[ds.IDPrefix]; ok {
		return DuplicateError("id_prefix", ds.IDPrefix)
	}

	hs := make(map[handlerKey]Handler)
	for _, h := range p.Handlers() {
		key := handlerKey{sourceID: ds.ID, modelType: h.ModelType()}
		if _, ok := hs[key]; ok {
			return DuplicateError("handler", ds.ID+"/"+string(h.ModelType()))
		}
		hs[key] = h
	}

	for k, v := range hs {
		r.handlers[k] = v
	}
	r.plugins = append(r.plugins, p)
	r.byID[ds.ID] = p
	r.byPrefix[ds.IDPrefix] = p
	return nil
}

// Plugins returns registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	res := make([]Plugin, len(r.plugins))
	copy(res, r.plugins)
	return res
}

// Len is the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.plugins)
}

// Plugin finds a plugin by the ID of its data source.
func (r *Registry) Plugin(id string) (Plugin, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// PluginByPrefix finds a plugin by the ID prefix of its data source.
func (r *Registry) PluginByPrefix(prefix string) (Plugin, bool) {
	p, ok := r.byPrefix[prefix]
	return p, ok
}

// Handler returns the handler of a synthesis model of a data source.
func (r *Registry) Handler(sourceID string, mt model.Type) (Handler, bool) {
	h, ok := r.handlers[handlerKey{sourceID: sourceID, modelType: mt}]
	return h, ok
}

// Lister returns the handler of a model if it can list objects.
func (r *Registry) Lister(sourceID string, mt model.Type) (Lister, bool) {
	h, ok := r.Handler(sourceID, mt)
	if !ok {
		return nil, false
	}
	l, ok := h.(Lister)
	return l, ok
}

// Getter returns the handler of a model if it can retrieve objects.
func (r *Registry) Getter(sourceID string, mt model.Type) (Getter, bool) {
	h, ok := r.Handler(sourceID, mt)
	if !ok {
		return nil, false
	}
	g, ok := h.(Getter)
	return g, ok
}
