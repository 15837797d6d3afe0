// ABOUTME: Tests for the conversation sync layer
// ABOUTME: Covers unread counts, mark-read round trips, send preconditions, and stale fetches
package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/models"
)

type fakeService struct {
	mu     sync.Mutex
	selfID uuid.UUID
	roster []models.Counterpart
	convos map[uuid.UUID][]models.Message

	rosterErr      error
	convErrs       map[uuid.UUID]error
	onConversation func(id uuid.UUID)

	markReadCalls []uuid.UUID
	sendCalls     int
	sendErr       error
}

func (f *fakeService) Roster(ctx context.Context) ([]models.Counterpart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rosterErr != nil {
		return nil, f.rosterErr
	}
	out := make([]models.Counterpart, len(f.roster))
	copy(out, f.roster)
	return out, nil
}

func (f *fakeService) Conversation(ctx context.Context, id uuid.UUID) ([]models.Message, error) {
	f.mu.Lock()
	hook := f.onConversation
	f.mu.Unlock()
	if hook != nil {
		hook(id)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.convErrs[id]; err != nil {
		return nil, err
	}
	out := make([]models.Message, len(f.convos[id]))
	copy(out, f.convos[id])
	return out, nil
}

func (f *fakeService) Send(ctx context.Context, id uuid.UUID, content string) (models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCalls++
	if f.sendErr != nil {
		return models.Message{}, f.sendErr
	}
	m := models.Message{
		ID:        uuid.New(),
		SenderID:  f.selfID,
		Content:   content,
		CreatedAt: time.Now(),
		Read:      true,
	}
	f.convos[id] = append(f.convos[id], m)
	return m, nil
}

func (f *fakeService) MarkRead(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markReadCalls = append(f.markReadCalls, id)
	msgs := f.convos[id]
	for i := range msgs {
		msgs[i].Read = true
	}
	return nil
}

type fakeCache struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.Counterpart
	puts int
}

func (f *fakeCache) PutAll(roster []models.Counterpart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byID == nil {
		f.byID = make(map[uuid.UUID]models.Counterpart)
	}
	for _, cp := range roster {
		f.byID[cp.ID] = cp
	}
	f.puts++
	return nil
}

func (f *fakeCache) Get(id uuid.UUID) (models.Counterpart, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp, ok := f.byID[id]
	return cp, ok, nil
}

func (f *fakeCache) GetAll() ([]models.Counterpart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Counterpart, 0, len(f.byID))
	for _, cp := range f.byID {
		out = append(out, cp)
	}
	return out, nil
}

func at(minutes int) time.Time {
	return time.Date(2026, 8, 1, 12, minutes, 0, 0, time.UTC)
}

func TestLoadRosterComputesUnread(t *testing.T) {
	selfID := uuid.New()
	alice := uuid.New()

	svc := &fakeService{
		selfID: selfID,
		roster: []models.Counterpart{{ID: alice, DisplayName: "Alice"}},
		convos: map[uuid.UUID][]models.Message{
			alice: {
				{ID: uuid.New(), SenderID: alice, Content: "one", CreatedAt: at(1)},
				{ID: uuid.New(), SenderID: selfID, Content: "mine", CreatedAt: at(2)},
				{ID: uuid.New(), SenderID: alice, Content: "two", CreatedAt: at(3)},
			},
		},
	}
	s := New(svc, selfID, nil)

	if err := s.LoadRoster(context.Background()); err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}

	roster := s.Roster()
	if len(roster) != 1 {
		t.Fatalf("roster has %d entries, want 1", len(roster))
	}
	// The self-authored message never counts as unread.
	if roster[0].UnreadCount != 2 {
		t.Errorf("UnreadCount = %d, want 2", roster[0].UnreadCount)
	}
	if !roster[0].LastMessageAt.Equal(at(3)) {
		t.Errorf("LastMessageAt = %v, want %v", roster[0].LastMessageAt, at(3))
	}
}

func TestLoadRosterOrdersByRecency(t *testing.T) {
	selfID := uuid.New()
	older, newer, silent := uuid.New(), uuid.New(), uuid.New()

	svc := &fakeService{
		selfID: selfID,
		roster: []models.Counterpart{
			{ID: older, DisplayName: "Older"},
			{ID: newer, DisplayName: "Newer"},
			{ID: silent, DisplayName: "Silent"},
		},
		convos: map[uuid.UUID][]models.Message{
			older: {{ID: uuid.New(), SenderID: older, CreatedAt: at(1), Read: true}},
			newer: {{ID: uuid.New(), SenderID: newer, CreatedAt: at(30), Read: true}},
		},
	}
	s := New(svc, selfID, nil)

	if err := s.LoadRoster(context.Background()); err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}

	roster := s.Roster()
	if roster[0].DisplayName != "Newer" || roster[1].DisplayName != "Older" {
		t.Errorf("order = %s, %s; want Newer, Older", roster[0].DisplayName, roster[1].DisplayName)
	}
	// A counterpart with no history sorts last with the zero sentinel.
	if roster[2].DisplayName != "Silent" || !roster[2].LastMessageAt.IsZero() {
		t.Errorf("silent counterpart = %+v, want zero LastMessageAt last", roster[2])
	}
}

func TestLoadRosterFallsBackToCachedSummary(t *testing.T) {
	selfID := uuid.New()
	alice := uuid.New()

	svc := &fakeService{
		selfID:   selfID,
		roster:   []models.Counterpart{{ID: alice, DisplayName: "Alice Renamed"}},
		convos:   map[uuid.UUID][]models.Message{},
		convErrs: map[uuid.UUID]error{alice: errors.New("timeout")},
	}
	cache := &fakeCache{byID: map[uuid.UUID]models.Counterpart{
		alice: {ID: alice, DisplayName: "Alice", UnreadCount: 7, LastMessageAt: at(5)},
	}}
	s := New(svc, selfID, cache)

	if err := s.LoadRoster(context.Background()); err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}

	roster := s.Roster()
	if roster[0].UnreadCount != 7 {
		t.Errorf("UnreadCount = %d, want the cached 7", roster[0].UnreadCount)
	}
	// The display name still comes from the fresh roster response.
	if roster[0].DisplayName != "Alice Renamed" {
		t.Errorf("DisplayName = %q, want the fresh name", roster[0].DisplayName)
	}
}

func TestSelectMarksReadAndClearsUnread(t *testing.T) {
	selfID := uuid.New()
	alice := uuid.New()

	svc := &fakeService{
		selfID: selfID,
		roster: []models.Counterpart{{ID: alice, DisplayName: "Alice"}},
		convos: map[uuid.UUID][]models.Message{
			alice: {
				{ID: uuid.New(), SenderID: alice, Content: "b", CreatedAt: at(2)},
				{ID: uuid.New(), SenderID: alice, Content: "a", CreatedAt: at(1)},
			},
		},
	}
	s := New(svc, selfID, nil)
	if err := s.LoadRoster(context.Background()); err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	if got := s.Roster()[0].UnreadCount; got != 2 {
		t.Fatalf("UnreadCount before select = %d, want 2", got)
	}

	if err := s.Select(context.Background(), alice); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	messages := s.Messages()
	if len(messages) != 2 || messages[0].Content != "a" || messages[1].Content != "b" {
		t.Errorf("messages not ascending by creation time: %+v", messages)
	}
	if len(svc.markReadCalls) != 1 || svc.markReadCalls[0] != alice {
		t.Errorf("markReadCalls = %v, want [alice]", svc.markReadCalls)
	}
	// The unread count settles to zero only via the roster round trip.
	if got := s.Roster()[0].UnreadCount; got != 0 {
		t.Errorf("UnreadCount after select = %d, want 0", got)
	}
}

func TestSendRequiresContentAndConversation(t *testing.T) {
	selfID := uuid.New()
	svc := &fakeService{selfID: selfID, convos: map[uuid.UUID][]models.Message{}}
	s := New(svc, selfID, nil)

	if err := s.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Send(blank) = %v, want ErrEmptyMessage", err)
	}
	if err := s.Send(context.Background(), "hello"); !errors.Is(err, ErrNoConversation) {
		t.Errorf("Send without selection = %v, want ErrNoConversation", err)
	}
	if svc.sendCalls != 0 {
		t.Errorf("sendCalls = %d, want 0; preconditions must not reach the server", svc.sendCalls)
	}
}

func TestSendAppendsCanonicalMessage(t *testing.T) {
	selfID := uuid.New()
	alice := uuid.New()

	svc := &fakeService{
		selfID: selfID,
		roster: []models.Counterpart{{ID: alice, DisplayName: "Alice"}},
		convos: map[uuid.UUID][]models.Message{alice: {}},
	}
	s := New(svc, selfID, nil)
	if err := s.Select(context.Background(), alice); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if err := s.Send(context.Background(), "  see you friday  "); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	messages := s.Messages()
	if len(messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(messages))
	}
	if messages[0].Content != "see you friday" {
		t.Errorf("Content = %q, want trimmed content", messages[0].Content)
	}
	if messages[0].ID == uuid.Nil {
		t.Error("appended message should be the server's canonical record")
	}
	// Sending bumps the counterpart's recency via the roster reload.
	if s.Roster()[0].LastMessageAt.IsZero() {
		t.Error("roster recency should update after a send")
	}
}

func TestSendFailureAppendsNothing(t *testing.T) {
	selfID := uuid.New()
	alice := uuid.New()

	svc := &fakeService{
		selfID:  selfID,
		roster:  []models.Counterpart{{ID: alice}},
		convos:  map[uuid.UUID][]models.Message{alice: {}},
		sendErr: errors.New("boom"),
	}
	s := New(svc, selfID, nil)
	if err := s.Select(context.Background(), alice); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if err := s.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected send error")
	}
	if got := len(s.Messages()); got != 0 {
		t.Errorf("messages = %d, want 0 after failed send", got)
	}
}

func TestStaleConversationFetchDiscarded(t *testing.T) {
	selfID := uuid.New()
	alice, bob := uuid.New(), uuid.New()

	svc := &fakeService{
		selfID: selfID,
		// Empty roster keeps the fan-out away from the conversation hook.
		convos: map[uuid.UUID][]models.Message{
			alice: {{ID: uuid.New(), SenderID: alice, Content: "from alice", CreatedAt: at(1)}},
			bob:   {{ID: uuid.New(), SenderID: bob, Content: "from bob", CreatedAt: at(2)}},
		},
	}
	s := New(svc, selfID, nil)
	if err := s.Select(context.Background(), alice); err != nil {
		t.Fatalf("Select(alice) failed: %v", err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	blocked := false
	svc.mu.Lock()
	svc.onConversation = func(id uuid.UUID) {
		if id == alice && !blocked {
			blocked = true
			close(started)
			<-release
		}
	}
	svc.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- s.LoadMessages(context.Background()) }()
	<-started

	// The user switches conversations while the old fetch is in flight.
	if err := s.Select(context.Background(), bob); err != nil {
		t.Fatalf("Select(bob) failed: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("stale LoadMessages failed: %v", err)
	}

	messages := s.Messages()
	if len(messages) != 1 || messages[0].Content != "from bob" {
		t.Errorf("messages = %+v, want only bob's; the stale alice fetch must be discarded", messages)
	}
}

func TestNewWarmsRosterFromCache(t *testing.T) {
	selfID := uuid.New()
	alice, bob := uuid.New(), uuid.New()
	cache := &fakeCache{byID: map[uuid.UUID]models.Counterpart{
		alice: {ID: alice, DisplayName: "Alice", LastMessageAt: at(1)},
		bob:   {ID: bob, DisplayName: "Bob", LastMessageAt: at(9)},
	}}

	s := New(&fakeService{selfID: selfID}, selfID, cache)

	roster := s.Roster()
	if len(roster) != 2 {
		t.Fatalf("warm roster = %d entries, want 2", len(roster))
	}
	if roster[0].DisplayName != "Bob" {
		t.Errorf("warm roster[0] = %s, want Bob (most recent first)", roster[0].DisplayName)
	}
}
