package integrationtests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/filepickgo/internal/registry"
	"github.com/vk/filepickgo/internal/testutil"
)

const scenarioManifest = `
	source "alpha" {
		priority  = 10
		mimetypes = ["image/jpeg"]
	}

	source "bravo" {
		priority = 5
	}

	source "charlie" {
		priority  = 20
		mimetypes = ["image/png", "image/jpeg"]
	}
`

func scenarioModules() []registry.Module {
	return []registry.Module{
		&testutil.StaticModule{SourceName: "alpha", Filter: registry.StaticMimetypes{"image/jpeg"}},
		&testutil.StaticModule{SourceName: "bravo"},
		&testutil.StaticModule{SourceName: "charlie", Filter: registry.StaticMimetypes{"image/png", "image/jpeg"}},
	}
}

func TestPickerFlow_FilteredQuery(t *testing.T) {
	result := testutil.BuildApp(t,
		map[string]string{"modules/sources.hcl": scenarioManifest},
		scenarioModules()...,
	)
	require.NoError(t, result.Err)

	testutil.EnableAll(t, result.App.Registry())

	records := result.App.Picker().GetHandlers(context.Background(), []string{"image/jpeg"})
	testutil.AssertRecordNames(t, records, "alpha", "charlie")
	require.Equal(t, 10, records[0].Priority)
	require.Equal(t, []string{"image/jpeg"}, records[0].Mimetypes)
	require.Equal(t, 20, records[1].Priority)
	require.Equal(t, []string{"image/jpeg"}, records[1].Mimetypes)
}

func TestPickerFlow_UnfilteredQuery(t *testing.T) {
	result := testutil.BuildApp(t,
		map[string]string{"modules/sources.hcl": scenarioManifest},
		scenarioModules()...,
	)
	require.NoError(t, result.Err)

	testutil.EnableAll(t, result.App.Registry())

	records := result.App.Picker().GetHandlers(context.Background(), nil)
	testutil.AssertRecordNames(t, records, "alpha", "bravo", "charlie")
	for _, rec := range records {
		require.Nil(t, rec.Mimetypes, "record %s", rec.Name)
	}
}

func TestPickerFlow_LogoutClearsAndReenableRestores(t *testing.T) {
	result := testutil.BuildApp(t,
		map[string]string{"modules/sources.hcl": scenarioManifest},
		scenarioModules()...,
	)
	require.NoError(t, result.Err)

	ctx := context.Background()
	app := result.App
	testutil.EnableAll(t, app.Registry())

	app.Sessions().Login(ctx, "alpha.example")
	require.Len(t, app.Picker().GetHandlers(ctx, nil), 3)

	app.Sessions().Logout(ctx)
	require.Empty(t, app.Picker().GetHandlers(ctx, nil))

	// The registrations survived the logout.
	require.NoError(t, app.Registry().Enable("charlie"))
	records := app.Picker().GetHandlers(ctx, nil)
	testutil.AssertRecordNames(t, records, "charlie")
	require.Equal(t, 20, records[0].Priority)
}

func TestPickerFlow_ReregistrationWins(t *testing.T) {
	result := testutil.BuildApp(t,
		map[string]string{"modules/sources.hcl": scenarioManifest},
		scenarioModules()...,
	)
	require.NoError(t, result.Err)

	app := result.App
	(&testutil.StaticModule{SourceName: "bravo", Title: "Bravo II"}).Register(app.Registry())
	testutil.EnableAll(t, app.Registry())

	records := app.Picker().GetHandlers(context.Background(), nil)
	testutil.AssertRecordNames(t, records, "alpha", "bravo", "charlie")
	require.Equal(t, "Bravo II", records[1].Title)
}
