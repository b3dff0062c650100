package messaging

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AtRiskMedia/defensesim-go/internal/domain/entities/workshop"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/persistence/kv"
	"github.com/AtRiskMedia/defensesim-go/pkg/config"
)

// OpsClient represents a single connected ops console client.
type OpsClient struct {
	Conn *websocket.Conn
	Send chan []byte
}

// LeaderboardEntry is one row of the top-N score summary pushed to ops
// consoles on each tick.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Total    int    `json:"total"`
}

// ActivityPayload is the complete data structure sent to the ops console
// on each tick.
type ActivityPayload struct {
	Timestamp      time.Time            `json:"timestamp"`
	Simulation     *workshop.Simulation `json:"simulation"`
	SessionCount   int                  `json:"sessionCount"`
	CompletedCount int                  `json:"completedCount"`
	Leaderboard    []LeaderboardEntry   `json:"leaderboard"`
}

// OpsBroadcaster manages connected ops console clients and pushes a
// periodic workshop activity snapshot to all of them.
type OpsBroadcaster struct {
	clients    map[*OpsClient]bool
	register   chan *OpsClient
	unregister chan *OpsClient
	store      kv.Store
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
}

// NewOpsBroadcaster creates a new broadcaster instance.
func NewOpsBroadcaster(store kv.Store, logger *logging.ChanneledLogger) *OpsBroadcaster {
	return &OpsBroadcaster{
		clients:    make(map[*OpsClient]bool),
		register:   make(chan *OpsClient),
		unregister: make(chan *OpsClient),
		store:      store,
		logger:     logger,
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine;
// it returns when ctx is cancelled.
func (b *OpsBroadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(config.OpsActivityInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			b.mu.Unlock()
			b.logger.SSE().Info("Ops console client registered", "clients", b.clientCount())

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			b.mu.Unlock()
			b.logger.SSE().Info("Ops console client unregistered", "clients", b.clientCount())

		case <-ticker.C:
			b.broadcastActivity(ctx)

		case <-ctx.Done():
			b.mu.Lock()
			for client := range b.clients {
				close(client.Send)
				delete(b.clients, client)
			}
			b.mu.Unlock()
			return
		}
	}
}

// Register queues a client for registration.
func (b *OpsBroadcaster) Register(client *OpsClient) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *OpsBroadcaster) Unregister(client *OpsClient) {
	b.unregister <- client
}

func (b *OpsBroadcaster) clientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// broadcastActivity gathers and sends the workshop snapshot to all clients.
// Skips the store work entirely when no console is connected.
func (b *OpsBroadcaster) broadcastActivity(ctx context.Context) {
	if b.clientCount() == 0 {
		return
	}

	payload := b.buildPayload(ctx)
	message, err := json.Marshal(payload)
	if err != nil {
		b.logger.SSE().Error("Error marshaling ops activity payload", "error", err.Error())
		return
	}

	b.mu.RLock()
	for client := range b.clients {
		select {
		case client.Send <- message:
		default:
		}
	}
	b.mu.RUnlock()
}

// buildPayload is the core logic for assembling one activity snapshot.
func (b *OpsBroadcaster) buildPayload(ctx context.Context) ActivityPayload {
	payload := ActivityPayload{
		Timestamp:   time.Now().UTC(),
		Leaderboard: []LeaderboardEntry{},
	}

	sim := &workshop.Simulation{}
	if err := b.store.Get(ctx, workshop.KeyCurrentSimulation, sim); err == nil {
		payload.Simulation = sim
		payload.CompletedCount = len(sim.ParticipantProgress)
	} else {
		payload.Simulation = &workshop.Simulation{IsActive: false}
	}

	if sessions, err := b.store.GetByPrefix(ctx, "session:"); err == nil {
		payload.SessionCount = len(sessions)
	} else {
		b.logger.SSE().Error("Ops activity session scan failed", "error", err.Error())
	}

	scores, err := b.store.GetByPrefix(ctx, "score:")
	if err != nil {
		b.logger.SSE().Error("Ops activity score scan failed", "error", err.Error())
		return payload
	}

	for _, entry := range scores {
		var score workshop.UserScore
		if err := json.Unmarshal(entry.Value, &score); err != nil {
			continue
		}
		payload.Leaderboard = append(payload.Leaderboard, LeaderboardEntry{
			Username: strings.TrimPrefix(entry.Key, "score:"),
			Total:    score.Total,
		})
	}
	sort.SliceStable(payload.Leaderboard, func(i, j int) bool {
		return payload.Leaderboard[i].Total > payload.Leaderboard[j].Total
	})
	if len(payload.Leaderboard) > config.LeaderboardSize {
		payload.Leaderboard = payload.Leaderboard[:config.LeaderboardSize]
	}

	return payload
}
