//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastSearch shortens the quiescence window so tests stay quick
const fastSearch = `
[search]
debounce_ms = 300
`

func searchCatalog(t *testing.T) *FakeCatalog {
	return NewFakeCatalog(t,
		catalogModule{ID: 1, Name: "alpha-project", Tags: []string{"go"}},
		catalogModule{ID: 2, Name: "beta-project", Tags: []string{"go", "net"}},
		catalogModule{ID: 3, Name: "gamma-tool", Tags: []string{"net"}},
	)
}

func TestTypingIsDebounced(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.WriteConfig(fastSearch))
	catalog := searchCatalog(t)
	require.NoError(t, tf.StartApp(catalog), "Failed to start app")

	require.True(t, tf.Ready(), "Should show modgrip title")
	require.True(t, tf.SeePlain("gamma-tool"), "Initial listing should load")

	require.NoError(t, tf.SendKeys(KeySearch))
	require.NoError(t, tf.Type("alpha"))

	// Only the final text reaches the catalog
	require.True(t, tf.WaitFor(func(string) bool {
		return catalog.SearchesFor("alpha") == 1
	}, 3*time.Second), "Search should be sent once typing pauses")
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, 1, catalog.SearchesFor("alpha"))
	for _, partial := range []string{"a", "al", "alp", "alph"} {
		assert.Zero(t, catalog.SearchesFor(partial), "partial text %q should not be searched", partial)
	}
}

func TestTagBecomesChip(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.WriteConfig(fastSearch))
	catalog := searchCatalog(t)
	require.NoError(t, tf.StartApp(catalog), "Failed to start app")
	require.True(t, tf.Ready(), "Should show modgrip title")
	require.True(t, tf.SeePlain("alpha-project"), "Initial listing should load")

	require.NoError(t, tf.SendKeys(KeySearch))
	require.NoError(t, tf.Type("tag:net "))

	require.True(t, tf.WaitFor(func(string) bool {
		for _, raw := range catalog.Searches() {
			if containsParam(raw, "tags", "net") {
				return true
			}
		}
		return false
	}, 3*time.Second), "Tag search should reach the catalog")

	// Removing the chip widens the search again
	searches := len(catalog.Searches())
	require.NoError(t, tf.SendKeys(KeyBackspace))
	require.True(t, tf.WaitFor(func(string) bool {
		return len(catalog.Searches()) > searches
	}, 3*time.Second), "Removing the tag should search again")

	all := catalog.Searches()
	assert.False(t, containsParam(all[len(all)-1], "tags", "net"), "Last search should carry no tag")
}
