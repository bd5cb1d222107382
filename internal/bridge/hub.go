package bridge

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/wishbox/wishbox/internal/adapter"
	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/logger"
)

// Sink receives serialized events for one live connection
//
//go:generate mockgen -source=hub.go -destination=../mocks/hub.go -package=mocks -mock_names=Sink=MockSink
type Sink interface {
	// Send writes one serialized event to the connection
	Send(ctx context.Context, data []byte) error
}

// Subscription is the handle returned by Subscribe; Unsubscribe takes it back
type Subscription struct {
	room string
	sink Sink
}

// Hub holds this process's live connections grouped by room. Membership is
// mutated only under a single mutex with brief critical sections; the
// send loop runs outside it so a slow client never blocks unrelated rooms.
type Hub struct {
	json adapter.JSON

	mu    sync.Mutex
	rooms map[string]map[*Subscription]struct{}
}

// NewHub creates an empty connection hub
func NewHub(jsonAdapter adapter.JSON) *Hub {
	return &Hub{
		json:  jsonAdapter,
		rooms: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe adds a connection to a room's membership set
func (h *Hub) Subscribe(room string, sink Sink) *Subscription {
	sub := &Subscription{room: room, sink: sink}

	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Subscription]struct{})
		h.rooms[room] = members
	}
	members[sub] = struct{}{}
	return sub
}

// Unsubscribe removes a connection from its room's membership set. Safe to
// call more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[sub.room]
	if !ok {
		return
	}
	delete(members, sub)
	if len(members) == 0 {
		delete(h.rooms, sub.room)
	}
}

// RoomSize returns the current membership count of a room
func (h *Hub) RoomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

// Broadcast delivers an event to every local connection in its room. The
// membership list is snapshotted under the lock; sends happen outside it. A
// send failure is an implicit disconnect: the member is dropped, not retried.
func (h *Hub) Broadcast(ctx context.Context, event *domain.Event) {
	data, err := h.json.Marshal(event)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to marshal event for fan-out"))
		return
	}

	room := event.Room()

	h.mu.Lock()
	members := make([]*Subscription, 0, len(h.rooms[room]))
	for sub := range h.rooms[room] {
		members = append(members, sub)
	}
	h.mu.Unlock()

	for _, member := range members {
		if err := member.sink.Send(ctx, data); err != nil {
			logger.Debug("dropping connection after send failure",
				zap.String("room", room),
				zap.Error(err))
			h.Unsubscribe(member)
		}
	}
}
