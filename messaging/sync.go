// ABOUTME: Conversation synchronization against the messaging API
// ABOUTME: Keeps the roster and the active conversation consistent with server truth
package messaging

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tablevine/tablevine/models"
)

// ErrNoConversation is returned for message operations without an active
// conversation.
var ErrNoConversation = errors.New("no active conversation")

// ErrEmptyMessage is returned when a send is attempted with no content. The
// check runs before any request is issued.
var ErrEmptyMessage = errors.New("message content is empty")

// rosterFanout bounds the per-counterpart conversation fetches issued while
// computing unread counts.
const rosterFanout = 4

// Service is the remote messaging surface the sync layer runs against.
type Service interface {
	Roster(ctx context.Context) ([]models.Counterpart, error)
	Conversation(ctx context.Context, counterpartID uuid.UUID) ([]models.Message, error)
	Send(ctx context.Context, counterpartID uuid.UUID, content string) (models.Message, error)
	MarkRead(ctx context.Context, counterpartID uuid.UUID) error
}

// SummaryCache persists roster summaries between polls so the screen can
// paint immediately and a failed per-counterpart fetch can fall back to the
// last known numbers.
type SummaryCache interface {
	PutAll(roster []models.Counterpart) error
	Get(counterpartID uuid.UUID) (models.Counterpart, bool, error)
	GetAll() ([]models.Counterpart, error)
}

// Sync keeps a two-party message view consistent with the remote source of
// truth: the counterpart roster ordered by recency, and the full history of
// the one active conversation.
type Sync struct {
	mu     sync.Mutex
	svc    Service
	selfID uuid.UUID
	cache  SummaryCache

	roster   []models.Counterpart
	active   uuid.UUID
	messages []models.Message
	err      error

	// convGen discards conversation fetches that complete after the active
	// counterpart has changed.
	convGen uint64
}

// New creates a sync layer. selfID is the local user: messages they authored
// never count as unread. cache may be nil.
func New(svc Service, selfID uuid.UUID, cache SummaryCache) *Sync {
	s := &Sync{svc: svc, selfID: selfID, cache: cache}
	if cache != nil {
		if cached, err := cache.GetAll(); err == nil && len(cached) > 0 {
			sortRoster(cached)
			s.roster = cached
		}
	}
	return s
}

// Roster returns the current counterpart summaries, most recent first.
func (s *Sync) Roster() []models.Counterpart {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Counterpart, len(s.roster))
	copy(out, s.roster)
	return out
}

// SelfID returns the local user's ID.
func (s *Sync) SelfID() uuid.UUID { return s.selfID }

// Active returns the active counterpart ID, or uuid.Nil.
func (s *Sync) Active() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Messages returns the active conversation, ascending by creation time.
func (s *Sync) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Err returns the last operation error, or nil.
func (s *Sync) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// LoadRoster fetches the counterpart list and recomputes each entry's unread
// count and recency from its conversation history. One failed counterpart
// fetch falls back to the cached summary instead of failing the whole load.
func (s *Sync) LoadRoster(ctx context.Context) error {
	counterparts, err := s.svc.Roster(ctx)
	if err != nil {
		s.setErr(err)
		return err
	}

	summaries := make([]models.Counterpart, len(counterparts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterFanout)
	for i, cp := range counterparts {
		g.Go(func() error {
			messages, err := s.svc.Conversation(gctx, cp.ID)
			if err != nil {
				summaries[i] = s.cachedSummary(cp)
				return nil
			}
			summaries[i] = summarize(cp, messages, s.selfID)
			return nil
		})
	}
	_ = g.Wait()

	sortRoster(summaries)

	s.mu.Lock()
	s.roster = summaries
	s.err = nil
	s.mu.Unlock()

	if s.cache != nil {
		_ = s.cache.PutAll(summaries)
	}
	return nil
}

// Select makes counterpartID the active conversation, loads its history, and
// acknowledges its unread messages. The two follow-ups run and fail
// independently; any errors are joined.
func (s *Sync) Select(ctx context.Context, counterpartID uuid.UUID) error {
	s.mu.Lock()
	s.active = counterpartID
	s.messages = nil
	s.convGen++
	s.mu.Unlock()

	loadErr := s.LoadMessages(ctx)
	readErr := s.MarkRead(ctx)
	return errors.Join(loadErr, readErr)
}

// LoadMessages fetches the full history with the active counterpart and
// replaces the message list wholesale, ascending by creation time. A fetch
// that completes after the conversation changed is discarded.
func (s *Sync) LoadMessages(ctx context.Context) error {
	s.mu.Lock()
	active := s.active
	gen := s.convGen
	s.mu.Unlock()

	if active == uuid.Nil {
		return ErrNoConversation
	}

	messages, err := s.svc.Conversation(ctx, active)
	if err != nil {
		s.setErr(err)
		return err
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.convGen {
		return nil
	}
	s.messages = messages
	s.err = nil
	return nil
}

// MarkRead acknowledges the active conversation, then reloads the roster so
// its unread count settles to zero only after the round trip completes.
// Idempotent when nothing is unread.
func (s *Sync) MarkRead(ctx context.Context) error {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active == uuid.Nil {
		return ErrNoConversation
	}
	if err := s.svc.MarkRead(ctx, active); err != nil {
		s.setErr(err)
		return err
	}
	return s.LoadRoster(ctx)
}

// Send posts trimmed content to the active conversation. On success the
// server's canonical message is appended and the roster reloaded so recency
// ordering bumps; on failure nothing is appended.
func (s *Sync) Send(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	active := s.active
	gen := s.convGen
	s.mu.Unlock()

	if active == uuid.Nil {
		return ErrNoConversation
	}

	sent, err := s.svc.Send(ctx, active, content)
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	if gen == s.convGen {
		s.messages = append(s.messages, sent)
	}
	s.err = nil
	s.mu.Unlock()

	return s.LoadRoster(ctx)
}

func (s *Sync) cachedSummary(cp models.Counterpart) models.Counterpart {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(cp.ID); err == nil && ok {
			cached.DisplayName = cp.DisplayName
			return cached
		}
	}
	return cp
}

func (s *Sync) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// summarize computes the roster entry for one counterpart from its full
// conversation. LastMessageAt stays the zero sentinel when no messages exist.
func summarize(cp models.Counterpart, messages []models.Message, selfID uuid.UUID) models.Counterpart {
	out := models.Counterpart{ID: cp.ID, DisplayName: cp.DisplayName}
	for _, m := range messages {
		if m.CreatedAt.After(out.LastMessageAt) {
			out.LastMessageAt = m.CreatedAt
		}
		if !m.Read && m.SenderID != selfID {
			out.UnreadCount++
		}
	}
	return out
}

func sortRoster(roster []models.Counterpart) {
	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].LastMessageAt.After(roster[j].LastMessageAt)
	})
}
