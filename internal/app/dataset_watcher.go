package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"fieldguide/internal/resource"
)

// EventFilesChanged carries the refreshed document file list whenever a
// data file is added, removed or rewritten.
const EventFilesChanged = "dataset:files-changed"

// settleDelay coalesces bursts of filesystem events (editors write,
// rename and chmod in quick succession) into one refresh.
const settleDelay = 200 * time.Millisecond

// datasetWatcher pushes document/ folder changes to the frontend so the
// file picker refreshes without polling.
type datasetWatcher struct {
	ctx     context.Context
	dir     string
	emitter EventEmitter
	watcher *fsnotify.Watcher
	log     *zap.Logger
	stopCh  chan struct{}
}

func newDatasetWatcher(ctx context.Context, dir string, emitter EventEmitter, log *zap.Logger) (*datasetWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &datasetWatcher{
		ctx:     ctx,
		dir:     dir,
		emitter: emitter,
		watcher: watcher,
		log:     log,
		stopCh:  make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Stop terminates the watch loop and releases the watch handle.
func (w *datasetWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *datasetWatcher) watchLoop() {
	settle := time.NewTimer(settleDelay)
	if !settle.Stop() {
		<-settle.C
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Write) {
				if !settle.Stop() {
					select {
					case <-settle.C:
					default:
					}
				}
				settle.Reset(settleDelay)
			}
		case <-settle.C:
			w.refresh()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-w.stopCh:
			return
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *datasetWatcher) refresh() {
	names, err := resource.ListFiles(w.dir)
	if err != nil {
		w.log.Warn("list data files", zap.Error(err))
		return
	}
	w.log.Debug("document folder changed", zap.Int("files", len(names)))
	w.emitter.Emit(w.ctx, EventFilesChanged, names)
}
