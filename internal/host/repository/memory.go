package repository

import (
	"errors"
	"sync"

	"github.com/hostsapi/hosts-api/internal/host"
)

var (
	ErrNotFound = errors.New("host not found")
	ErrConflict = errors.New("host id already exists")
)

// MemoryRepo keeps hosts in insertion order for the lifetime of the process.
// Every exported method takes the lock; returned records are copies.
type MemoryRepo struct {
	mu    sync.RWMutex
	hosts []host.Host
}

func NewMemoryRepo(seed ...host.Host) *MemoryRepo {
	m := &MemoryRepo{hosts: make([]host.Host, 0, len(seed))}
	for _, h := range seed {
		m.hosts = append(m.hosts, h.Clone())
	}
	return m
}

// Append adds h at the end of the collection.
func (m *MemoryRepo) Append(h host.Host) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexByID(h.ID) >= 0 {
		return ErrConflict
	}
	m.hosts = append(m.hosts, h.Clone())
	return nil
}

func (m *MemoryRepo) FindByID(id string) (host.Host, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexByID(id)
	if i < 0 {
		return host.Host{}, ErrNotFound
	}
	return m.hosts[i].Clone(), nil
}

// IndexByID returns the position of id, or -1.
func (m *MemoryRepo) IndexByID(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexByID(id)
}

// Slice returns up to count records starting at offset.
func (m *MemoryRepo) Slice(offset, count int) []host.Host {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slice(offset, count)
}

// Page is Slice plus the collection size, read under the same lock.
func (m *MemoryRepo) Page(offset, count int) ([]host.Host, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slice(offset, count), len(m.hosts)
}

func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hosts)
}

// UpdateByID looks up id, merges and writes back in one critical section.
func (m *MemoryRepo) UpdateByID(id string, merge func(host.Host) host.Host) (host.Host, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexByID(id)
	if i < 0 {
		return host.Host{}, ErrNotFound
	}
	updated := merge(m.hosts[i].Clone())
	updated.ID = id
	m.hosts[i] = updated.Clone()
	return updated, nil
}

// RemoveByID drops every record with the given id and reports whether any was removed.
func (m *MemoryRepo) RemoveByID(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.hosts[:0]
	for _, h := range m.hosts {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	removed := len(kept) != len(m.hosts)
	// clear the tail so dropped records can be collected
	for i := len(kept); i < len(m.hosts); i++ {
		m.hosts[i] = host.Host{}
	}
	m.hosts = kept
	return removed
}

func (m *MemoryRepo) slice(offset, count int) []host.Host {
	if offset < 0 || count <= 0 || offset >= len(m.hosts) {
		return []host.Host{}
	}
	end := offset + count
	if end > len(m.hosts) || end < offset {
		end = len(m.hosts)
	}
	out := make([]host.Host, 0, end-offset)
	for _, h := range m.hosts[offset:end] {
		out = append(out, h.Clone())
	}
	return out
}

func (m *MemoryRepo) indexByID(id string) int {
	for i := range m.hosts {
		if m.hosts[i].ID == id {
			return i
		}
	}
	return -1
}
