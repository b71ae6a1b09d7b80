// internal/store/memory.go
package store

import (
	"context"
	stderrors "errors"
	"sync"

	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/models"
)

const DefaultMemoryCapacity = 20

var (
	errRedisNotConnected = stderrors.New("redis is not connected")
	errUnknownBackend    = stderrors.New("unknown snapshot store backend")
	errNoSnapshot        = stderrors.New("nil snapshot")
)

// Memory holds the most recent snapshots in process, evicting the oldest
// once capacity is reached.
type Memory struct {
	mu        sync.RWMutex
	capacity  int
	snapshots map[string]*models.Snapshot
	order     []string
}

var _ Store = (*Memory)(nil)

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &Memory{
		capacity:  capacity,
		snapshots: make(map[string]*models.Snapshot),
	}
}

func (m *Memory) Save(_ context.Context, snap *models.Snapshot) (err error) {
	defer func() { observe(BackendMemory, "save", err) }()
	if snap == nil || snap.ID == "" {
		return errors.NewSnapshotStoreFailedError("save", errNoSnapshot)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.snapshots[snap.ID]; !exists {
		m.order = append(m.order, snap.ID)
	} else {
		m.order = append(remove(m.order, snap.ID), snap.ID)
	}
	m.snapshots[snap.ID] = snap

	for len(m.order) > m.capacity {
		delete(m.snapshots, m.order[0])
		m.order = m.order[1:]
	}
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (_ *models.Snapshot, err error) {
	defer func() { observe(BackendMemory, "get", err) }()

	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.snapshots[id]
	if !ok {
		return nil, errors.NewSnapshotNotFoundError(id)
	}
	return snap, nil
}

func (m *Memory) Latest(_ context.Context) (_ *models.Snapshot, err error) {
	defer func() { observe(BackendMemory, "latest", err) }()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.order) == 0 {
		return nil, errors.NewSnapshotNotFoundError("latest")
	}
	return m.snapshots[m.order[len(m.order)-1]], nil
}

// Len reports how many snapshots are held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snapshots)
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
