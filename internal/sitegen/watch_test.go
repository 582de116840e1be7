package sitegen

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	requests, trigger := newDebouncer(30 * time.Millisecond)
	for range 5 {
		trigger()
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-requests:
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}
	select {
	case <-requests:
		t.Fatal("burst produced more than one request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestShouldIgnoreEvent(t *testing.T) {
	out := filepath.Join(string(filepath.Separator), "work", "output")
	cases := map[string]bool{
		filepath.Join(out, "index.html"):                                        true,
		filepath.Join(string(filepath.Separator), "work", "tpl", ".DS_Store"):   true,
		filepath.Join(string(filepath.Separator), "work", "tpl", "page.swp"):    true,
		filepath.Join(string(filepath.Separator), "work", "tpl", "README.md~"):  true,
		filepath.Join(string(filepath.Separator), "work", "tpl", "README.md"):   false,
		filepath.Join(string(filepath.Separator), "work", "outputs", "a.astro"): false,
	}
	for path, want := range cases {
		assert.Equal(t, want, shouldIgnoreEvent(path, out), path)
	}
}

func TestWatchRebuildsOnConfigChange(t *testing.T) {
	cfgDir := t.TempDir()
	cfg := writeConfig(t, cfgDir, `{"site":{"name":"Acme"}}`)
	tmpl := t.TempDir()
	writeTree(t, tmpl, map[string]string{"README.md": "{{site.name}}"})

	ctx, cancel := context.WithCancel(context.Background())
	var rebuilds atomic.Int32
	errCh := make(chan error, 1)
	go func() {
		errCh <- Watch(ctx, WatchOptions{
			ConfigPath:   cfg,
			TemplateRoot: tmpl,
			Debounce:     20 * time.Millisecond,
			Logger:       quietLogger(),
		}, func() { rebuilds.Add(1) })
	}()

	// The watcher registers asynchronously; keep touching the file until it notices.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(cfg, []byte(`{"site":{"name":"Acme Rescue"}}`), 0o600)
		return rebuilds.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchIgnoresUnrelatedFilesNextToConfig(t *testing.T) {
	cfgDir := t.TempDir()
	cfg := writeConfig(t, cfgDir, `{}`)
	tmpl := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var rebuilds atomic.Int32
	go func() {
		_ = Watch(ctx, WatchOptions{ConfigPath: cfg, TemplateRoot: tmpl, Debounce: 10 * time.Millisecond, Logger: quietLogger()},
			func() { rebuilds.Add(1) })
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "notes.txt"), []byte("x"), 0o600))
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, rebuilds.Load())
}

func TestWatchMissingTemplateRoot(t *testing.T) {
	cfg := writeConfig(t, t.TempDir(), `{}`)
	err := Watch(context.Background(), WatchOptions{
		ConfigPath:   cfg,
		TemplateRoot: filepath.Join(t.TempDir(), "absent"),
		Logger:       quietLogger(),
	}, func() {})
	require.Error(t, err)
}

func TestWatchPollsWithoutEvents(t *testing.T) {
	cfg := writeConfig(t, t.TempDir(), `{}`)
	tmpl := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	var rebuilds atomic.Int32
	errCh := make(chan error, 1)
	go func() {
		errCh <- Watch(ctx, WatchOptions{
			ConfigPath:   cfg,
			TemplateRoot: tmpl,
			Debounce:     5 * time.Millisecond,
			PollInterval: 50 * time.Millisecond,
			Logger:       quietLogger(),
		}, func() { rebuilds.Add(1) })
	}()

	require.Eventually(t, func() bool { return rebuilds.Load() >= 2 }, 5*time.Second, 20*time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
