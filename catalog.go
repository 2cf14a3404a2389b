package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// CatalogStore serves the workflow catalog for each region. Regions fall back
// to their built-in catalog unless a catalogs/<region>.json file overrides it.
// Loaded files are cached and invalidated on modification, either by mtime
// check on access or by the fsnotify watcher.
type CatalogStore struct {
	sync.RWMutex
	catalogs     map[string][]WorkflowRecord
	loadedAt     map[string]time.Time
	fileModTimes map[string]time.Time
	watcher      *fsnotify.Watcher
	catalogDir   string
}

func NewCatalogStore(catalogDir string) (*CatalogStore, error) {
	store := &CatalogStore{
		catalogs:     make(map[string][]WorkflowRecord),
		loadedAt:     make(map[string]time.Time),
		fileModTimes: make(map[string]time.Time),
		catalogDir:   catalogDir,
	}

	if catalogDir == "" {
		return store, nil
	}

	if _, err := os.Stat(catalogDir); err != nil {
		log.Printf("Catalog directory %s not found, using built-in catalogs", catalogDir)
		return store, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(catalogDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	store.watcher = watcher
	log.Printf("File watcher initialized for: %s", catalogDir)
	return store, nil
}

func (cs *CatalogStore) Close() {
	if cs.watcher != nil {
		cs.watcher.Close()
	}
}

// WatchFiles invalidates a region's cached catalog whenever its JSON file is
// written or created. Runs until the watcher closes; a no-op when no catalog
// directory was found at startup.
func (cs *CatalogStore) WatchFiles() {
	if cs.watcher == nil {
		return
	}

	log.Println("Catalog watcher started")

	for {
		select {
		case event, ok := <-cs.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && strings.HasSuffix(event.Name, ".json") {
				region := strings.TrimSuffix(filepath.Base(event.Name), ".json")

				// Small delay to ensure the file write is complete
				time.Sleep(100 * time.Millisecond)

				cs.Lock()
				delete(cs.catalogs, region)
				delete(cs.fileModTimes, filepath.Clean(event.Name))
				cs.Unlock()

				log.Printf("Catalog file changed: %s, region '%s' will reload on next request", event.Name, region)
			}

		case err, ok := <-cs.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Catalog watcher error: %v", err)
		}
	}
}

func (cs *CatalogStore) isFileModified(filePath string) (bool, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return false, err
	}

	modTime := info.ModTime()

	cs.RLock()
	lastModTime, exists := cs.fileModTimes[filePath]
	cs.RUnlock()

	if !exists || modTime.After(lastModTime) {
		cs.Lock()
		cs.fileModTimes[filePath] = modTime
		cs.Unlock()
		return true, nil
	}

	return false, nil
}

// Workflows returns the active catalog for the region, loading and caching
// the override file when one exists.
func (cs *CatalogStore) Workflows(region *Region) []WorkflowRecord {
	filePath := filepath.Join(cs.catalogDir, region.Name+".json")

	if cs.catalogDir != "" {
		if modified, err := cs.isFileModified(filePath); err == nil && modified {
			cs.Lock()
			delete(cs.catalogs, region.Name)
			cs.Unlock()
			log.Printf("Detected modification for %s, reloading...", region.Name)
		}
	}

	cs.RLock()
	catalog, exists := cs.catalogs[region.Name]
	cs.RUnlock()

	if exists {
		return catalog
	}

	cs.Lock()
	defer cs.Unlock()

	// Double-check after acquiring write lock
	if catalog, exists := cs.catalogs[region.Name]; exists {
		return catalog
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return builtinWorkflows[region.Name]
	}

	var records []WorkflowRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("Failed to parse catalog file %s, using built-in catalog: %v", filePath, err)
		return builtinWorkflows[region.Name]
	}

	cs.catalogs[region.Name] = records
	cs.loadedAt[region.Name] = time.Now()

	log.Printf("Loaded catalog for region: %s (%d workflows)", region.Name, len(records))

	return records
}

// Find looks a workflow up by id in the region's active catalog.
func (cs *CatalogStore) Find(region *Region, id string) (WorkflowRecord, bool) {
	for _, wf := range cs.Workflows(region) {
		if wf.ID == id {
			return wf, true
		}
	}
	return WorkflowRecord{}, false
}

// ReloadAll drops every cached catalog and reports how many were dropped.
func (cs *CatalogStore) ReloadAll() int {
	cs.Lock()
	defer cs.Unlock()

	count := len(cs.catalogs)
	cs.catalogs = make(map[string][]WorkflowRecord)
	cs.fileModTimes = make(map[string]time.Time)
	return count
}

// Info summarizes cache state for the admin endpoint.
func (cs *CatalogStore) Info() map[string]interface{} {
	cs.RLock()
	defer cs.RUnlock()

	cached := make([]map[string]interface{}, 0, len(cs.catalogs))
	for region, catalog := range cs.catalogs {
		cached = append(cached, map[string]interface{}{
			"region":    region,
			"workflows": len(catalog),
			"loaded_at": cs.loadedAt[region],
		})
	}

	return map[string]interface{}{
		"catalog_dir":     cs.catalogDir,
		"watching":        cs.watcher != nil,
		"cached_catalogs": len(cs.catalogs),
		"catalogs":        cached,
		"timestamp":       time.Now(),
	}
}
