package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/filepickgo/internal/bus"
	"github.com/vk/filepickgo/internal/config"
	"github.com/vk/filepickgo/internal/ctxlog"
	"github.com/vk/filepickgo/internal/registry"
	"github.com/vk/filepickgo/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	picker   *registry.Picker
	bus      *bus.Dispatcher
	sessions *session.Manager
	config   *config.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, registry,
// picker and event dispatcher.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load all source manifests into the format-agnostic model first.
	cfgModel, err := loader.Load(ctx, appConfig.ModulesPath)
	if err != nil {
		// A failure to load manifests is a fatal startup error.
		panic(fmt.Errorf("failed to load source manifests: %w", err))
	}
	logger.Debug("Manifests loaded and translated into unified model.")

	// Create and populate the registry with Go sources.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go source modules registered.", "count", len(modules))

	// Attach the manifest definitions and hand sources their options.
	reg.PopulateDefinitionsFromModel(cfgModel)
	if err := reg.ConfigureSources(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry definitions populated from manifest model.")

	// Validate the integrity of the registry. A mismatch between the Go
	// side and the manifests is a programmer error, so we panic.
	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	dispatcher := bus.New()
	picker := registry.NewPicker(reg, dispatcher)

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		picker:   picker,
		bus:      dispatcher,
		sessions: session.NewManager(dispatcher),
		config:   cfgModel,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Picker returns the application's picker facade.
func (a *App) Picker() *registry.Picker {
	return a.picker
}

// Bus returns the application's event dispatcher.
func (a *App) Bus() *bus.Dispatcher {
	return a.bus
}

// Sessions returns the application's site session manager.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}
