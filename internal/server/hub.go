// Package server exposes games over a WebSocket JSON protocol.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/literature-engine/literature-server-go/internal/bot"
	"github.com/literature-engine/literature-server-go/internal/game"
	"github.com/literature-engine/literature-server-go/internal/game/card"
	"github.com/literature-engine/literature-server-go/internal/repository"
)

var errUnknownGame = errors.New("unknown game id")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one WebSocket connection bound to at most one game seat.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	gameID   string
	playerID int
}

// Hub routes messages between connected clients and the game registry.
type Hub struct {
	mu         sync.Mutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	manager    *game.Manager
	repo       *repository.GameRepository
	rng        *rand.Rand
	logger     *zap.Logger
}

// NewHub creates a hub over the given registry. repo may be nil, in which
// case finished games are not persisted.
func NewHub(manager *game.Manager, repo *repository.GameRepository, rng *rand.Rand, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		manager:    manager,
		repo:       repo,
		rng:        rng,
		logger:     logger,
	}
}

// Run processes client registration until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("client unregistered")

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) handleMessage(ctx context.Context, client *Client, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch msg.Type {
	case msgCreate:
		nPlayers := msg.Players
		if nPlayers == 0 {
			nPlayers = 4
		}
		id, _, err := h.manager.Create(nPlayers, game.RandomDeal(h.rng), game.RandomPicker(h.rng))
		if err != nil {
			client.sendError(err)
			return
		}
		client.gameID = id
		client.playerID = msg.PlayerID
		client.sendJSON(Message{Type: msgGameCreated, GameID: id})

	case msgJoin:
		if _, ok := h.manager.Get(msg.GameID); !ok {
			client.sendError(errUnknownGame)
			return
		}
		client.gameID = msg.GameID
		client.playerID = msg.PlayerID
		h.sendState(client)

	case msgState:
		h.sendState(client)

	case msgCommand:
		g, ok := h.manager.Get(client.gameID)
		if !ok {
			client.sendError(errUnknownGame)
			return
		}
		if _, err := g.CommitText(msg.Command); err != nil {
			client.sendError(err)
			return
		}
		if g.Completed() {
			h.persist(ctx, client.gameID, g)
		}
		h.broadcastState(client.gameID)

	case msgLegalMoves:
		g, ok := h.manager.Get(client.gameID)
		if !ok {
			client.sendError(errUnknownGame)
			return
		}
		moves, err := bot.ValidMoves(g, client.playerID, true)
		if err != nil {
			client.sendError(err)
			return
		}
		views := make([]LegalMoveView, 0, len(moves))
		for _, m := range moves {
			views = append(views, LegalMoveView{Respondent: m.Respondent, Card: m.Card.String()})
		}
		client.sendJSON(Message{Type: msgMoves, GameID: client.gameID, Data: views})

	default:
		h.logger.Warn("unknown message type", zap.String("type", msg.Type))
	}
}

// stateView builds the game state as seen by one player. Caller holds h.mu.
func (h *Hub) stateView(gameID string, playerID int) (*StateView, error) {
	g, ok := h.manager.Get(gameID)
	if !ok {
		return nil, errUnknownGame
	}
	view := &StateView{
		GameID: gameID,
		You:    playerID,
		Turn:   g.Turn(),
		Scores: make(map[string]int),
	}
	for id := 0; id < g.NumPlayers(); id++ {
		p, err := g.Player(id)
		if err != nil {
			return nil, err
		}
		view.Players = append(view.Players, PlayerView{
			ID:        id,
			Team:      p.Team().String(),
			HandCount: p.HandSize(),
		})
		if id == playerID {
			for _, c := range p.Hand() {
				view.Hand = append(view.Hand, c.String())
			}
		}
	}
	for _, hs := range card.HalfSuits() {
		view.Claims = append(view.Claims, ClaimView{
			HalfSuit: hs.String(),
			Status:   g.ClaimStatus(hs).String(),
		})
	}
	for _, rec := range g.Ledger() {
		view.Ledger = append(view.Ledger, MoveView{
			Interrogator: rec.Move.Interrogator,
			Respondent:   rec.Move.Respondent,
			Card:         rec.Move.Card.String(),
			Success:      rec.Success,
		})
	}
	for team, score := range g.Scores() {
		view.Scores[team.String()] = score
	}
	view.Completed = g.Completed()
	if view.Completed {
		if winner, err := g.Winner(); err == nil {
			view.Winner = winner.String()
		}
	}
	return view, nil
}

func (h *Hub) sendState(client *Client) {
	view, err := h.stateView(client.gameID, client.playerID)
	if err != nil {
		client.sendError(err)
		return
	}
	client.sendJSON(Message{Type: msgGameState, GameID: client.gameID, Data: view})
}

// broadcastState sends each connected client of the game its own view.
// Caller holds h.mu.
func (h *Hub) broadcastState(gameID string) {
	for client := range h.clients {
		if client.gameID != gameID {
			continue
		}
		view, err := h.stateView(gameID, client.playerID)
		if err != nil {
			continue
		}
		client.sendJSON(Message{Type: msgGameState, GameID: gameID, Data: view})
	}
}

func (h *Hub) persist(ctx context.Context, gameID string, g *game.Game) {
	if h.repo == nil {
		return
	}
	rec, err := repository.RecordOf(gameID, g)
	if err != nil {
		h.logger.Error("summarizing finished game", zap.String("game_id", gameID), zap.Error(err))
		return
	}
	if err := h.repo.Save(ctx, rec); err != nil {
		h.logger.Error("persisting finished game", zap.String("game_id", gameID), zap.Error(err))
	}
}

func (c *Client) sendJSON(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(err error) {
	c.sendJSON(Message{Type: msgError, Error: err.Error()})
}

func (c *Client) readPump(ctx context.Context, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			hub.logger.Warn("malformed message", zap.Error(err))
			c.sendError(err)
			continue
		}
		hub.handleMessage(ctx, c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// ServeWS upgrades an HTTP request and attaches the connection to the hub.
func (h *Hub) ServeWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(ctx, h)
}
