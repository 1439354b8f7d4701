package builder

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RebuildFunc is invoked after a debounced batch of contract changes.
// The slice holds the relative paths that changed since the last rebuild.
type RebuildFunc func(ctx context.Context, changed []string)

// ContractWatcher watches the contracts directory for source changes and
// triggers rebuilds after a quiet period.
type ContractWatcher struct {
	contractsDir string
	discovery    *ContractDiscovery
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	rebuild      RebuildFunc
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewContractWatcher creates a new file watcher over the contracts directory.
func NewContractWatcher(contractsDir string, discovery *ContractDiscovery, debounce time.Duration, rebuild RebuildFunc) (*ContractWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cw := &ContractWatcher{
		contractsDir: contractsDir,
		discovery:    discovery,
		watcher:      watcher,
		debounceTime: debounce,
		rebuild:      rebuild,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	// Add directories to watcher recursively
	if err := cw.addDirectoriesRecursively(contractsDir); err != nil {
		watcher.Close()
		return nil, err
	}

	return cw, nil
}

// Start begins watching for contract changes.
func (cw *ContractWatcher) Start(ctx context.Context) {
	go cw.watch(ctx)
}

// Stop stops the file watcher.
func (cw *ContractWatcher) Stop() {
	cw.stopOnce.Do(func() {
		close(cw.stopCh)
		<-cw.doneCh // Wait for goroutine to finish
		cw.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (cw *ContractWatcher) watch(ctx context.Context) {
	defer close(cw.doneCh)

	var debounceTimer *time.Timer
	rebuildCh := make(chan struct{}, 1)
	changedFiles := make(map[string]bool) // Track changed files for the callback

	for {
		select {
		case <-ctx.Done():
			// Context cancellation - clean shutdown
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-cw.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}

			// Handle new directories - add them to watcher
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := cw.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			// Filter events - only contract sources trigger rebuilds
			if !cw.shouldProcessEvent(event) {
				continue
			}

			// Track changed file
			relPath, _ := filepath.Rel(cw.contractsDir, event.Name)
			changedFiles[filepath.ToSlash(relPath)] = true

			// Reset debounce timer - properly stop and drain
			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					// Timer already fired, drain the channel
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}

			// Create new timer that will trigger the rebuild
			debounceTimer = time.AfterFunc(cw.debounceTime, func() {
				// Send rebuild signal (non-blocking)
				select {
				case rebuildCh <- struct{}{}:
				default:
				}
			})

		case <-rebuildCh:
			// Execute the rebuild callback
			cw.triggerRebuild(ctx, changedFiles)
			// Clear changed files map for next batch
			changedFiles = make(map[string]bool)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// triggerRebuild invokes the rebuild callback for a batch of changes.
func (cw *ContractWatcher) triggerRebuild(ctx context.Context, changedFiles map[string]bool) {
	if len(changedFiles) == 0 {
		return
	}

	fileList := make([]string, 0, len(changedFiles))
	for file := range changedFiles {
		fileList = append(fileList, file)
	}

	log.Printf("Rebuilding due to changes in %d file(s)...", len(fileList))
	start := time.Now()

	cw.rebuild(ctx, fileList)

	log.Printf("Rebuild complete in %v", time.Since(start))
}

// shouldProcessEvent checks if an event should trigger a rebuild.
func (cw *ContractWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	// Only care about WRITE, CREATE, REMOVE, and RENAME events
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	// Get relative path for pattern matching
	relPath, err := filepath.Rel(cw.contractsDir, event.Name)
	if err != nil {
		return false
	}

	// Normalize path separators for glob matching
	relPath = filepath.ToSlash(relPath)

	return cw.discovery.Matches(relPath)
}

// addDirectoriesRecursively adds all directories in the tree to the watcher.
func (cw *ContractWatcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// An unreadable root is fatal, anything deeper is logged and skipped
			if path == rootPath {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}

		// Only add directories
		if !info.IsDir() {
			return nil
		}

		// Add directory to watcher
		if err := cw.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
			return nil // Continue anyway
		}

		return nil
	})
}
