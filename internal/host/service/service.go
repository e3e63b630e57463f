package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hostsapi/hosts-api/internal/events"
	"github.com/hostsapi/hosts-api/internal/host"
	"github.com/hostsapi/hosts-api/internal/host/repository"
	"github.com/hostsapi/hosts-api/pkg/logger"
	"github.com/hostsapi/hosts-api/pkg/metrics"
)

var (
	ErrNotFound = errors.New("not found")
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultPage  = 1

	maxIDAttempts = 3
)

// Event subjects published after successful mutations.
const (
	SubjectCreated = "created"
	SubjectUpdated = "updated"
	SubjectDeleted = "deleted"
)

// Page is one slice of the host list. Total counts every stored host.
type Page struct {
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Total int         `json:"total"`
	Items []host.Host `json:"items"`
}

// Service defines the host operations used by the handler layer.
type Service interface {
	Create(ctx context.Context, in host.CreateInput) (host.Host, error)
	List(ctx context.Context, page, limit int) (Page, error)
	Get(ctx context.Context, id string) (host.Host, error)
	Update(ctx context.Context, id string, in host.UpdateInput) (host.Host, error)
	Delete(ctx context.Context, id string) error
}

// Option customises a memoryService.
type Option func(*memoryService)

// WithIDGenerator replaces the UUID generator, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *memoryService) { s.newID = gen }
}

// WithPublisher sends change events to p.
func WithPublisher(p events.Publisher) Option {
	return func(s *memoryService) {
		if p != nil {
			s.events = p
		}
	}
}

// NewMemoryService returns a Service backed by repo.
func NewMemoryService(repo *repository.MemoryRepo, opts ...Option) Service {
	s := &memoryService{repo: repo, newID: uuid.NewString, events: events.Nop{}}
	for _, opt := range opts {
		opt(s)
	}
	metrics.HostsStored.Set(float64(repo.Len()))
	return s
}

type memoryService struct {
	repo   *repository.MemoryRepo
	newID  func() string
	events events.Publisher
}

func (s *memoryService) Create(ctx context.Context, in host.CreateInput) (host.Host, error) {
	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		h := host.New(s.newID(), in)
		if h.ID == "" {
			lastErr = errors.New("empty id generated")
			continue
		}
		err := s.repo.Append(h)
		if errors.Is(err, repository.ErrConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			s.observe("create", "error")
			return host.Host{}, fmt.Errorf("append host: %w", err)
		}
		s.observe("create", "ok")
		s.publish(ctx, SubjectCreated, h)
		return h, nil
	}
	s.observe("create", "error")
	return host.Host{}, fmt.Errorf("generate host id: %w", lastErr)
}

func (s *memoryService) List(ctx context.Context, page, limit int) (Page, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page < 1 {
		page = 1
	}
	// an offset that would overflow simply lies past the end
	offset := (page - 1) * limit
	if offset/limit != page-1 {
		offset = -1
	}
	items, total := s.repo.Page(offset, limit)
	s.observe("list", "ok")
	return Page{Page: page, Limit: limit, Total: total, Items: items}, nil
}

func (s *memoryService) Get(ctx context.Context, id string) (host.Host, error) {
	h, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.observe("get", "not_found")
			return host.Host{}, ErrNotFound
		}
		s.observe("get", "error")
		return host.Host{}, err
	}
	s.observe("get", "ok")
	return h, nil
}

func (s *memoryService) Update(ctx context.Context, id string, in host.UpdateInput) (host.Host, error) {
	h, err := s.repo.UpdateByID(id, func(cur host.Host) host.Host {
		return cur.Apply(in)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.observe("update", "not_found")
			return host.Host{}, ErrNotFound
		}
		s.observe("update", "error")
		return host.Host{}, err
	}
	s.observe("update", "ok")
	s.publish(ctx, SubjectUpdated, h)
	return h, nil
}

func (s *memoryService) Delete(ctx context.Context, id string) error {
	if !s.repo.RemoveByID(id) {
		s.observe("delete", "not_found")
		return ErrNotFound
	}
	s.observe("delete", "ok")
	s.publish(ctx, SubjectDeleted, map[string]string{"id": id})
	return nil
}

func (s *memoryService) observe(op, outcome string) {
	metrics.HostOperations.WithLabelValues(op, outcome).Inc()
	metrics.HostsStored.Set(float64(s.repo.Len()))
}

// publish never fails the caller; a lost notification is only logged.
func (s *memoryService) publish(ctx context.Context, subject string, data interface{}) {
	if err := s.events.Publish(ctx, subject, data); err != nil {
		logger.Warnf("failed to publish host event %s: %v", subject, err)
	}
}
