package testutil

import (
	"github.com/vk/filepickgo/internal/registry"
)

// StaticModule registers a fixed source under a configurable name. It is
// useful for tests that need a registry population without dragging in
// the real capture modules.
type StaticModule struct {
	SourceName string
	Title      string
	Filter     registry.MimetypeFilter
	Action     registry.ActionFunc
}

// Register registers the static source.
func (m *StaticModule) Register(r *registry.Registry) {
	title := m.Title
	if title == "" {
		title = m.SourceName
	}
	r.RegisterSource(m.SourceName, &registry.RegisteredSource{
		Source: &staticSource{name: m.SourceName, title: title, action: m.Action},
		Filter: m.Filter,
	})
}

type staticSource struct {
	name   string
	title  string
	action registry.ActionFunc
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Data() registry.Presentation {
	return registry.Presentation{
		Title:  s.title,
		Icon:   "icon-" + s.name,
		Action: s.action,
	}
}
