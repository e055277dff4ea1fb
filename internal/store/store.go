package store

import (
	"os"
	"strings"
	"sync"

	"github.com/offkai-bot/offkai/internal/offkai"
)

// Coordinator owns the two JSON-backed caches (events, registrations)
// as values, behind a single coarse lock (spec §5, design note "Global
// caches → explicit store struct"). It is the only shared mutable
// state in the process.
type Coordinator struct {
	mu sync.RWMutex

	eventsPath   string
	responsesPath string
	waitlistPath string

	events *offkai.EventStore
	regs   *offkai.RegistrationStore

	responsesMigrated bool
}

// New returns a Coordinator backed by the given file paths. Load must
// be called before use (spec §4.1: "load happens exactly once at
// startup, lazy on first access is acceptable").
func New(eventsPath, responsesPath, waitlistPath string) *Coordinator {
	return &Coordinator{
		eventsPath:    eventsPath,
		responsesPath: responsesPath,
		waitlistPath:  waitlistPath,
		events:        offkai.NewEventStore(),
		regs:          offkai.NewRegistrationStore(),
	}
}

// Load hydrates both caches from disk. Missing or empty files produce
// an empty stub and an empty cache (spec §4.1 failure modes); this
// method creates the stub files so later saves have something to
// overwrite cleanly.
func (c *Coordinator) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	eventsRaw, err := readOrStub(c.eventsPath, "[]")
	if err != nil {
		return err
	}
	for _, e := range loadEvents(eventsRaw) {
		c.events.LoadReplace(e)
	}

	responsesRaw, err := readOrStub(c.responsesPath, "{}")
	if err != nil {
		return err
	}
	var legacyWaitlistRaw []byte
	if c.waitlistPath != "" {
		if data, err := os.ReadFile(c.waitlistPath); err == nil {
			legacyWaitlistRaw = data
		}
	}
	buckets, migrated := loadResponses(responsesRaw, legacyWaitlistRaw)
	for fold, bucket := range buckets {
		c.regs.LoadBucket(fold, bucket)
	}
	c.responsesMigrated = migrated

	if migrated {
		// "after merge, save once and do not re-migrate" (spec §4.1).
		if err := c.saveLocked(); err != nil {
			return err
		}
	}
	return nil
}

// readOrStub reads path, creating it with stubContents if it does not
// exist or is empty (spec §4.1: "missing or empty file -> create an
// empty stub and proceed with an empty cache").
func readOrStub(path, stubContents string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		data = []byte(stubContents)
		if werr := os.WriteFile(path, data, 0o644); werr != nil {
			return nil, werr
		}
		return data, nil
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		data = []byte(stubContents)
		if werr := os.WriteFile(path, data, 0o644); werr != nil {
			return nil, werr
		}
	}
	return data, nil
}

// Save fully rewrites both JSON files from the in-memory caches (spec
// §4.1: "both files are fully rewritten on every save").
func (c *Coordinator) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked()
}

func (c *Coordinator) saveLocked() error {
	eventsData, err := encodeEvents(c.events.All())
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.eventsPath, eventsData, 0o644); err != nil {
		return err
	}

	names := make(map[string]string)
	for _, e := range c.events.All() {
		names[strings.ToLower(strings.TrimSpace(e.Name))] = e.Name
	}
	buckets := make(map[string]offkai.EventBucket)
	for _, fold := range c.regs.Events() {
		buckets[fold] = c.regs.Bucket(fold)
	}
	responsesData, err := encodeResponses(names, buckets)
	if err != nil {
		return err
	}
	return os.WriteFile(c.responsesPath, responsesData, 0o644)
}

// Mutate runs fn under the coordinator's write lock and persists the
// result. fn should apply store mutations only; any side-effect plan
// it wants to return should be computed and handed back by the caller
// after Mutate returns, so I/O happens outside the lock (spec §5).
func (c *Coordinator) Mutate(fn func(events *offkai.EventStore, regs *offkai.RegistrationStore) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := fn(c.events, c.regs); err != nil {
		return err
	}
	return c.saveLocked()
}

// MutateNoSave is like Mutate but skips persistence — for callers that
// batch several mutations into one save and then call SaveNow. The
// orchestrator does not use it; each of its commands goes through
// Mutate, which saves inside the same critical section.
func (c *Coordinator) MutateNoSave(fn func(events *offkai.EventStore, regs *offkai.RegistrationStore) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.events, c.regs)
}

// SaveNow exposes an explicit persist for callers using MutateNoSave.
func (c *Coordinator) SaveNow() error {
	return c.Save()
}

// View runs fn under the coordinator's read lock, for read-only
// queries (spec §5: "reads may use the same lock or a reader-
// preference variant").
func (c *Coordinator) View(fn func(events *offkai.EventStore, regs *offkai.RegistrationStore)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.events, c.regs)
}
