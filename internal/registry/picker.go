package registry

import (
	"context"

	"github.com/vk/filepickgo/internal/bus"
	"github.com/vk/filepickgo/internal/ctxlog"
)

// Record is the value object handed to the picker UI for one eligible
// source: presentation metadata plus the resolved priority and, for
// filtered queries, the resolved supported mimetypes. Records are built
// fresh per query and never retained.
type Record struct {
	Name        string
	Title       string
	Icon        string
	Class       string
	Action      ActionFunc
	AfterRender RenderHook

	// Priority is the manifest ranking hint, attached as data for the
	// consumer to sort by. The query itself applies no ordering beyond
	// enablement order.
	Priority int

	// Mimetypes is the resolved supported subset. Nil when the query
	// requested no filtering.
	Mimetypes []string
}

// Picker is the attachment-picker facade over the registry. It computes
// the eligible source records for a content-type request and clears the
// site-scoped enabled subset when the session ends.
type Picker struct {
	reg *Registry
}

// NewPicker creates a Picker over the given registry. When a dispatcher
// is provided, the picker subscribes its session-clear to the logout
// topic; the surrounding application owns and drives the dispatcher.
func NewPicker(reg *Registry, d *bus.Dispatcher) *Picker {
	p := &Picker{reg: reg}
	if d != nil {
		d.Subscribe(bus.TopicLogout, func(ctx context.Context) {
			ctxlog.FromContext(ctx).Debug("Logout received, clearing site sources.")
			p.ClearSiteHandlers()
		})
	}
	return p
}

// ClearSiteHandlers empties the site-scoped enabled subset. The
// registrations themselves survive; a later enable restores a source
// without re-registration. Idempotent.
func (p *Picker) ClearSiteHandlers() {
	p.reg.DisableAll()
}

// GetHandlers returns one record per applicable enabled source, in
// enablement order.
//
// A nil mimetypes slice requests no filtering: every enabled source is
// included and records carry no resolved mimetype list. A non-nil slice
// requests filtering: sources without a filter capability are excluded,
// as are sources whose filter resolves an empty subset; survivors carry
// the subset. An empty non-nil slice therefore yields no records.
//
// The call is read-only and surfaces no errors; malformed entries are
// skipped.
func (p *Picker) GetHandlers(ctx context.Context, mimetypes []string) []Record {
	logger := ctxlog.FromContext(ctx)

	var records []Record
	for _, entry := range p.reg.EnabledSources() {
		if entry.Source == nil {
			continue
		}
		data := entry.Source.Data()
		if data.Title == "" {
			logger.Debug("Skipping source without presentation data.", "name", entry.Name)
			continue
		}

		rec := Record{
			Name:        entry.Name,
			Title:       data.Title,
			Icon:        data.Icon,
			Class:       data.Class,
			Action:      data.Action,
			AfterRender: data.AfterRender,
		}
		if entry.Definition != nil {
			rec.Priority = entry.Definition.Priority
		}

		if mimetypes != nil {
			if entry.Filter == nil {
				continue
			}
			supported := entry.Filter.SupportedMimetypes(mimetypes)
			if len(supported) == 0 {
				continue
			}
			rec.Mimetypes = supported
		}

		records = append(records, rec)
	}

	logger.Debug("Picker query resolved.", "requested", mimetypes, "records", len(records))
	return records
}

// Registry exposes the underlying registry, primarily for enablement and
// testing.
func (p *Picker) Registry() *Registry {
	return p.reg
}
