package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literature-engine/literature-server-go/internal/config"
	"github.com/literature-engine/literature-server-go/internal/game"
	"github.com/literature-engine/literature-server-go/internal/game/card"
)

func newTestServer(t *testing.T) (*game.Manager, *websocket.Conn) {
	t.Helper()

	manager := game.NewManager(nil)
	hub := NewHub(manager, nil, rand.New(rand.NewPCG(1, 2)), nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := New(config.ServerConfig{
		WebSocket:       config.WebSocketConfig{Path: "/ws"},
		ShutdownTimeout: time.Second,
	}, hub, nil)

	ts := httptest.NewServer(srv.Handler(ctx))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return manager, conn
}

func send(t *testing.T, conn *websocket.Conn, msg Message) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func recv(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// decodeData round-trips the untyped Data payload into a concrete view.
func decodeData(t *testing.T, data any, out any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestHub_CreateAndState(t *testing.T) {
	manager, conn := newTestServer(t)

	send(t, conn, Message{Type: msgCreate, PlayerID: -1})
	created := recv(t, conn)
	require.Equal(t, msgGameCreated, created.Type)
	require.NotEmpty(t, created.GameID)
	assert.Equal(t, 1, manager.Count())

	send(t, conn, Message{Type: msgState})
	state := recv(t, conn)
	require.Equal(t, msgGameState, state.Type)

	var view StateView
	decodeData(t, state.Data, &view)
	require.Len(t, view.Players, 4)
	total := 0
	for _, p := range view.Players {
		total += p.HandCount
	}
	assert.Equal(t, card.DeckSize, total)
	require.Len(t, view.Claims, 8)
	for _, c := range view.Claims {
		assert.Equal(t, game.TeamNeither.String(), c.Status)
	}
	assert.False(t, view.Completed)
	// A spectator seat sees no private hand.
	assert.Empty(t, view.Hand)
}

func TestHub_JoinPlayCommand(t *testing.T) {
	_, conn := newTestServer(t)

	send(t, conn, Message{Type: msgCreate})
	created := recv(t, conn)
	require.Equal(t, msgGameCreated, created.Type)

	send(t, conn, Message{Type: msgState})
	var view StateView
	decodeData(t, recv(t, conn).Data, &view)

	// Take the seat whose turn it is.
	send(t, conn, Message{Type: msgJoin, GameID: created.GameID, PlayerID: view.Turn})
	var seated StateView
	decodeData(t, recv(t, conn).Data, &seated)
	assert.Equal(t, view.Turn, seated.You)
	assert.Len(t, seated.Hand, 12)

	send(t, conn, Message{Type: msgLegalMoves})
	movesMsg := recv(t, conn)
	require.Equal(t, msgMoves, movesMsg.Type)
	var moves []LegalMoveView
	decodeData(t, movesMsg.Data, &moves)
	require.NotEmpty(t, moves)

	send(t, conn, Message{
		Type:    msgCommand,
		Command: fmt.Sprintf("%d %s", moves[0].Respondent, moves[0].Card),
	})
	after := recv(t, conn)
	require.Equal(t, msgGameState, after.Type)
	var updated StateView
	decodeData(t, after.Data, &updated)
	require.Len(t, updated.Ledger, 1)
	assert.Equal(t, moves[0].Card, updated.Ledger[0].Card)
}

func TestHub_Errors(t *testing.T) {
	_, conn := newTestServer(t)

	send(t, conn, Message{Type: msgJoin, GameID: "nonsense"})
	errMsg := recv(t, conn)
	require.Equal(t, msgError, errMsg.Type)
	assert.Contains(t, errMsg.Error, "unknown game")

	send(t, conn, Message{Type: msgCommand, Command: "0 5C"})
	errMsg = recv(t, conn)
	require.Equal(t, msgError, errMsg.Type)

	send(t, conn, Message{Type: msgCreate, Players: 5})
	errMsg = recv(t, conn)
	require.Equal(t, msgError, errMsg.Type)
}
