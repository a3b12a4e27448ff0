package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/filepickgo/internal/registry"
)

// RecordNames extracts the source names from a query result, preserving
// order.
func RecordNames(records []registry.Record) []string {
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	return names
}

// AssertRecordNames checks that a query returned exactly the named
// sources, in order.
func AssertRecordNames(t *testing.T, records []registry.Record, expected ...string) {
	t.Helper()
	got := RecordNames(records)
	require.Empty(t, cmp.Diff(expected, got), "record names mismatch")
}
