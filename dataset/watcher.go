package dataset

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the store when the trip or network file changes on disk.
// Bursts of filesystem events are debounced into one reload.
type Watcher struct {
	fsw      *fsnotify.Watcher
	store    *Store
	log      *zap.Logger
	trips    string
	network  string
	onChange func(Snapshot)
	debounce time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewWatcher creates a watcher over the given files. Either path may be
// empty. onChange runs after each applied reload; hosts typically use it to
// reset playback to the new minimum bound.
func NewWatcher(store *Store, tripsPath, networkPath string, onChange func(Snapshot), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fs watcher")
	}
	w := &Watcher{
		fsw:      fsw,
		store:    store,
		log:      log,
		trips:    tripsPath,
		network:  networkPath,
		onChange: onChange,
		debounce: 250 * time.Millisecond,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	// Watch parent directories: editors replace files rather than write
	// them in place, which drops direct file watches.
	for _, dir := range w.watchDirs() {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "watch %s", dir)
		}
	}
	go w.run()
	return w, nil
}

// Close stops watching. No reload runs after Close returns.
func (w *Watcher) Close() error {
	close(w.stop)
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) watchDirs() []string {
	seen := map[string]struct{}{}
	var dirs []string
	for _, p := range []string{w.trips, w.network} {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (w *Watcher) run() {
	defer close(w.done)
	var timer *time.Timer
	var timerC <-chan time.Time
	pendingTrips, pendingNetwork := false, false

	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			switch {
			case w.trips != "" && filepath.Clean(ev.Name) == filepath.Clean(w.trips):
				pendingTrips = true
			case w.network != "" && filepath.Clean(ev.Name) == filepath.Clean(w.network):
				pendingNetwork = true
			default:
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("fs watcher error", zap.Error(err))
		case <-timerC:
			timerC = nil
			w.reload(pendingTrips, pendingNetwork)
			pendingTrips, pendingNetwork = false, false
		}
	}
}

func (w *Watcher) reload(reloadTrips, reloadNetwork bool) {
	tripsPath, networkPath := "", ""
	if reloadTrips {
		tripsPath = w.trips
	}
	if reloadNetwork {
		networkPath = w.network
	}
	if tripsPath == "" && networkPath == "" {
		return
	}
	w.log.Info("dataset changed on disk, reloading",
		zap.String("trips", tripsPath), zap.String("network", networkPath))
	if err := LoadIntoStore(context.Background(), w.store, tripsPath, networkPath, w.log); err != nil {
		w.log.Warn("dataset reload failed, keeping previous data", zap.Error(err))
		return
	}
	if w.onChange != nil {
		w.onChange(w.store.Snapshot())
	}
}
