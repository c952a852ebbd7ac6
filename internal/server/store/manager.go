package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/planfold/planfold/internal/common"
	"github.com/planfold/planfold/internal/server/models"
)

// backupVersion is embedded in every snapshot document.
const backupVersion = "1"

// backupsDirName is the subdirectory of the data directory holding snapshots.
const backupsDirName = "backups"

type managerState int

const (
	stateUninitialized managerState = iota
	stateInitializing
	stateReady
)

// Manager is the single point of truth for which stores exist right now: it
// owns the shared auth store and the currently active tagged data store.
// All mutating access goes through UpdateAuth/UpdateData so that at most one
// write per store is in flight and SwitchTag never races an update.
type Manager struct {
	mu       sync.Mutex
	state    managerState
	authPath string
	dataDir  string
	auth     *File[models.AuthDocument]
	data     *File[models.DataDocument]
	tag      string
}

// NewManager returns a Manager in the Uninitialized state. Initialize must
// succeed before any other method is usable.
func NewManager() *Manager {
	return &Manager{}
}

// Initialize opens the auth store at authPath and the tagged data store for
// initialTag inside dataDir. Both opens must succeed before the manager is
// Ready; on failure the manager stays unusable.
func (m *Manager) Initialize(authPath, dataDir, initialTag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateReady {
		return fmt.Errorf("store manager already initialized")
	}
	if err := ValidateTag(initialTag); err != nil {
		return err
	}

	m.state = stateInitializing

	auth, err := Open(authPath, newAuthDocument, (*models.AuthDocument).Normalize)
	if err != nil {
		m.state = stateUninitialized
		return fmt.Errorf("open auth store: %w", err)
	}

	data, err := openDataStore(dataDir, initialTag)
	if err != nil {
		m.state = stateUninitialized
		return fmt.Errorf("open data store: %w", err)
	}

	m.authPath = authPath
	m.dataDir = dataDir
	m.auth = auth
	m.data = data
	m.tag = initialTag
	m.state = stateReady
	return nil
}

func newAuthDocument() *models.AuthDocument {
	doc := &models.AuthDocument{}
	doc.Normalize()
	return doc
}

func newDataDocument() *models.DataDocument {
	doc := &models.DataDocument{}
	doc.Normalize()
	return doc
}

func openDataStore(dataDir, tag string) (*File[models.DataDocument], error) {
	path := filepath.Join(dataDir, DataFileName(tag))
	return Open(path, newDataDocument, (*models.DataDocument).Normalize)
}

func (m *Manager) ready() error {
	if m.state != stateReady {
		return common.ErrNotInitialized
	}
	return nil
}

// Auth returns the shared auth store.
func (m *Manager) Auth() (*File[models.AuthDocument], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ready(); err != nil {
		return nil, err
	}
	return m.auth, nil
}

// Data returns the currently active tagged data store.
func (m *Manager) Data() (*File[models.DataDocument], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ready(); err != nil {
		return nil, err
	}
	return m.data, nil
}

// ActiveTag returns the tag of the currently active data store.
func (m *Manager) ActiveTag() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ready(); err != nil {
		return "", err
	}
	return m.tag, nil
}

// UpdateAuth runs fn against the auth document and persists the store if fn
// succeeds. The mutation and the write happen under the manager lock, so no
// two writes to the auth file overlap.
func (m *Manager) UpdateAuth(fn func(*models.AuthDocument) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ready(); err != nil {
		return err
	}
	if err := fn(m.auth.Data()); err != nil {
		return err
	}
	return m.auth.Write()
}

// UpdateData runs fn against the active tagged document and persists the
// store if fn succeeds.
func (m *Manager) UpdateData(fn func(*models.DataDocument) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ready(); err != nil {
		return err
	}
	if err := fn(m.data.Data()); err != nil {
		return err
	}
	return m.data.Write()
}

// SwitchTag validates newTag, opens (load-or-create) its data store, and
// swaps the active store reference. The previous store is dropped as-is:
// callers must have persisted prior mutations already. The auth store is
// never touched.
func (m *Manager) SwitchTag(newTag string) error {
	if err := ValidateTag(newTag); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ready(); err != nil {
		return err
	}

	data, err := openDataStore(m.dataDir, newTag)
	if err != nil {
		return err
	}
	m.data = data
	m.tag = newTag
	return nil
}

// Tags lists the tags for which a data store file exists in the data
// directory, sorted. Tags are not first-class records; they are inferred
// from the file set.
func (m *Manager) Tags() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ready(); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(m.dataDir, "db-*.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: list data files: %v", common.ErrStoreIO, err)
	}

	tags := make([]string, 0, len(matches))
	for _, match := range matches {
		name := filepath.Base(match)
		tag := strings.TrimSuffix(strings.TrimPrefix(name, "db-"), ".json")
		if ValidateTag(tag) == nil {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// backupDocument is the on-disk shape of a point-in-time snapshot.
type backupDocument struct {
	Timestamp time.Time            `json:"timestamp"`
	Version   string               `json:"version"`
	Tag       string               `json:"tag"`
	Auth      *models.AuthDocument `json:"auth"`
	Data      *models.DataDocument `json:"data"`
}

// CreateBackup snapshots the current auth document and the active tagged
// document into one file under backups/, written with the same atomic
// temp-then-rename technique as the live stores. It returns the snapshot's
// path relative to the data directory and does not mutate either live store.
func (m *Manager) CreateBackup() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ready(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	doc := backupDocument{
		Timestamp: now,
		Version:   backupVersion,
		Tag:       m.tag,
		Auth:      m.auth.Data(),
		Data:      m.data.Data(),
	}

	data, err := jsonMarshalIndent(doc)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("backup-%s-%s.json", m.tag, backupTimestamp(now))
	rel := filepath.Join(backupsDirName, name)
	if err := writeFileAtomic(filepath.Join(m.dataDir, rel), data); err != nil {
		return "", err
	}
	return rel, nil
}

// backupTimestamp renders an ISO 8601 timestamp with ':' and '.' replaced by
// '-' so it is safe in file names.
func backupTimestamp(t time.Time) string {
	iso := t.Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(iso)
}
