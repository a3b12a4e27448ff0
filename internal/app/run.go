package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/filepickgo/internal/bus"
	"github.com/vk/filepickgo/internal/ctxlog"
	"github.com/vk/filepickgo/internal/registry"
)

// Run executes the main application logic based on the provided configuration:
// it starts a site session, enables every registered source for it, queries
// the picker with the requested content types and prints the eligible
// sources. With an events URL configured it then stays resident, reacting
// to session events from the hub.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.HealthcheckPort > 0 {
		a.startHealthcheckServer(appConfig.HealthcheckPort)
	}

	a.sessions.Login(ctx, appConfig.Site)
	for _, name := range a.registry.Names() {
		if err := a.registry.Enable(name); err != nil {
			return fmt.Errorf("failed to enable source: %w", err)
		}
	}
	a.logger.Info("Sources enabled for site.", "site", appConfig.Site, "count", len(a.registry.Names()))

	records := a.picker.GetHandlers(ctx, appConfig.Mimetypes)
	a.printRecords(records, appConfig.Mimetypes != nil)

	if appConfig.EventsURL != "" {
		listener, err := bus.ListenRemote(ctx, a.bus, bus.RemoteOptions{URL: appConfig.EventsURL})
		if err != nil {
			return fmt.Errorf("failed to attach events listener: %w", err)
		}
		defer listener.Close()

		a.logger.Info("Listening for session events. Interrupt to exit.", "url", appConfig.EventsURL)
		<-ctx.Done()
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// printRecords renders the query result. The registry attaches priority
// as data without ordering by it; sorting for display is this consumer's
// job, so higher priority is printed first.
func (a *App) printRecords(records []registry.Record, filtered bool) {
	if len(records) == 0 {
		fmt.Fprintln(a.outW, "No applicable sources.")
		return
	}

	sorted := make([]registry.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority > sorted[j].Priority })

	for _, rec := range sorted {
		line := fmt.Sprintf("%-12s %-24s priority=%d", rec.Name, rec.Title, rec.Priority)
		if filtered {
			line += fmt.Sprintf(" mimetypes=%s", strings.Join(rec.Mimetypes, ","))
		}
		fmt.Fprintln(a.outW, line)
	}
}
