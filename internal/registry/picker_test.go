package registry_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/filepickgo/internal/bus"
	"github.com/vk/filepickgo/internal/config"
	"github.com/vk/filepickgo/internal/registry"
)

// newScenario builds the canonical three-source population: alpha
// (priority 10, jpeg only), bravo (priority 5, no mimetype support) and
// charlie (priority 20, png and jpeg), all enabled in that order.
func newScenario(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	register(t, r, "alpha", "Alpha", registry.StaticMimetypes{"image/jpeg"})
	register(t, r, "bravo", "Bravo", nil)
	register(t, r, "charlie", "Charlie", registry.StaticMimetypes{"image/png", "image/jpeg"})

	r.PopulateDefinitionsFromModel(&config.Model{Sources: map[string]*config.SourceDefinition{
		"alpha":   {Name: "alpha", Priority: 10, Mimetypes: []string{"image/jpeg"}},
		"bravo":   {Name: "bravo", Priority: 5},
		"charlie": {Name: "charlie", Priority: 20, Mimetypes: []string{"image/png", "image/jpeg"}},
	}})

	for _, name := range []string{"alpha", "bravo", "charlie"} {
		require.NoError(t, r.Enable(name))
	}
	return r
}

func TestGetHandlers_UnfilteredIncludesEverySource(t *testing.T) {
	p := registry.NewPicker(newScenario(t), nil)
	records := p.GetHandlers(context.Background(), nil)

	require.Len(t, records, 3)
	require.Equal(t, []string{"alpha", "bravo", "charlie"}, recordNames(records))

	for _, rec := range records {
		// Unfiltered queries resolve no mimetypes.
		require.Nil(t, rec.Mimetypes, "record %s", rec.Name)
	}
	require.Equal(t, 10, records[0].Priority)
	require.Equal(t, 5, records[1].Priority)
	require.Equal(t, 20, records[2].Priority)
}

func TestGetHandlers_FilterExcludesUnsupportedSources(t *testing.T) {
	p := registry.NewPicker(newScenario(t), nil)
	records := p.GetHandlers(context.Background(), []string{"image/jpeg"})

	// bravo declares no mimetype support and is excluded.
	require.Equal(t, []string{"alpha", "charlie"}, recordNames(records))

	require.Equal(t, []string{"image/jpeg"}, records[0].Mimetypes)
	require.Equal(t, 10, records[0].Priority)
	require.Equal(t, []string{"image/jpeg"}, records[1].Mimetypes)
	require.Equal(t, 20, records[1].Priority)
}

func TestGetHandlers_FilterResolvesSupportedSubset(t *testing.T) {
	p := registry.NewPicker(newScenario(t), nil)
	records := p.GetHandlers(context.Background(), []string{"image/png", "image/gif"})

	require.Equal(t, []string{"charlie"}, recordNames(records))
	require.Empty(t, cmp.Diff([]string{"image/png"}, records[0].Mimetypes))
}

func TestGetHandlers_EmptyFilterYieldsNothing(t *testing.T) {
	p := registry.NewPicker(newScenario(t), nil)
	require.Empty(t, p.GetHandlers(context.Background(), []string{}))
}

func TestGetHandlers_AttachesPriorityWithoutSorting(t *testing.T) {
	r := registry.New()
	register(t, r, "low", "Low", registry.StaticMimetypes{"image/jpeg"})
	register(t, r, "high", "High", registry.StaticMimetypes{"image/jpeg"})
	r.PopulateDefinitionsFromModel(&config.Model{Sources: map[string]*config.SourceDefinition{
		"low":  {Name: "low", Priority: 1, Mimetypes: []string{"image/jpeg"}},
		"high": {Name: "high", Priority: 99, Mimetypes: []string{"image/jpeg"}},
	}})
	require.NoError(t, r.Enable("low"))
	require.NoError(t, r.Enable("high"))

	p := registry.NewPicker(r, nil)
	records := p.GetHandlers(context.Background(), []string{"image/jpeg"})

	// Enablement order wins; priority is data for the consumer.
	require.Equal(t, []string{"low", "high"}, recordNames(records))
	require.Equal(t, 1, records[0].Priority)
	require.Equal(t, 99, records[1].Priority)
}

func TestGetHandlers_SourceWithoutDefinitionGetsZeroPriority(t *testing.T) {
	r := registry.New()
	register(t, r, "bare", "Bare", nil)
	require.NoError(t, r.Enable("bare"))

	p := registry.NewPicker(r, nil)
	records := p.GetHandlers(context.Background(), nil)
	require.Len(t, records, 1)
	require.Zero(t, records[0].Priority)
}

func TestGetHandlers_SkipsSourceWithoutPresentation(t *testing.T) {
	r := registry.New()
	register(t, r, "alpha", "Alpha", nil)
	register(t, r, "broken", "", nil)
	require.NoError(t, r.Enable("alpha"))
	require.NoError(t, r.Enable("broken"))

	p := registry.NewPicker(r, nil)
	require.Equal(t, []string{"alpha"}, recordNames(p.GetHandlers(context.Background(), nil)))
}

func TestClearSiteHandlers_EmptiesEnabledSetOnly(t *testing.T) {
	r := newScenario(t)
	p := registry.NewPicker(r, nil)

	p.ClearSiteHandlers()
	require.Empty(t, p.GetHandlers(context.Background(), nil))
	require.Empty(t, p.GetHandlers(context.Background(), []string{"image/jpeg"}))

	// Clearing again is harmless.
	p.ClearSiteHandlers()

	// Registrations survive; a later enable restores availability.
	require.NoError(t, r.Enable("charlie"))
	records := p.GetHandlers(context.Background(), nil)
	require.Equal(t, []string{"charlie"}, recordNames(records))
}

func TestPicker_LogoutEventClearsEnabledSet(t *testing.T) {
	r := newScenario(t)
	d := bus.New()
	p := registry.NewPicker(r, d)

	require.Len(t, p.GetHandlers(context.Background(), nil), 3)

	d.Publish(context.Background(), bus.TopicLogout)
	require.Empty(t, p.GetHandlers(context.Background(), nil))
}

func recordNames(records []registry.Record) []string {
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	return names
}
