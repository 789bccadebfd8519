package controller

import (
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/fasthttp/websocket"

	"github.com/lgbarn/chesscore-go/internal/output"
	"github.com/lgbarn/chesscore-go/internal/service"
	"github.com/lgbarn/chesscore-go/internal/testutil"
	"github.com/lgbarn/chesscore-go/internal/ws"
)

const origin = "http://localhost:5173"

// serve runs app on a loopback listener and returns its address.
func serve(t *testing.T, maxGames int) (string, *service.GameService) {
	t.Helper()
	app, svc := newTestApp(t, maxGames)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go app.Listener(ln)                  //nolint:errcheck // stopped by Shutdown
	t.Cleanup(func() { app.Shutdown() }) //nolint:errcheck // test teardown

	return ln.Addr().String(), svc
}

func dial(t *testing.T, addr, gameID string) *websocket.Conn {
	t.Helper()
	header := http.Header{"Origin": []string{origin}}
	conn, resp, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws/games/"+gameID, header)
	if err != nil {
		t.Fatalf("dial: %v (response %v)", err, resp)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second)) //nolint:errcheck // checked by ReadJSON
	var msg ws.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func readView(t *testing.T, conn *websocket.Conn) *output.GameView {
	t.Helper()
	msg := readMessage(t, conn)
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("message type = %q (%s), want gameState", msg.Type, msg.Payload)
	}
	var view output.GameView
	if err := json.Unmarshal(msg.Payload, &view); err != nil {
		t.Fatalf("decoding view: %v", err)
	}
	return &view
}

func readError(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	msg := readMessage(t, conn)
	if msg.Type != ws.MessageTypeError {
		t.Fatalf("message type = %q, want error", msg.Type)
	}
	var payload ws.ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("decoding error: %v", err)
	}
	return payload.Error
}

func send(t *testing.T, conn *websocket.Conn, msgType ws.MessageType, payload interface{}) {
	t.Helper()
	msg := ws.Message{Type: msgType}
	if payload != nil {
		var err error
		if msg, err = ws.NewMessage(msgType, payload); err != nil {
			t.Fatalf("encoding message: %v", err)
		}
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestWebSocketPlay(t *testing.T) {
	addr, svc := serve(t, 0)
	id, err := svc.CreateGame("")
	testutil.AssertNoError(t, err)

	white := dial(t, addr, id)
	testutil.AssertEqual(t, readView(t, white).Ply, 0)
	black := dial(t, addr, id)
	testutil.AssertEqual(t, readView(t, black).Ply, 0)

	// A move reaches every connection.
	send(t, white, ws.MessageTypeMove, ws.MovePayload{Move: "e2e4"})
	for _, conn := range []*websocket.Conn{white, black} {
		view := readView(t, conn)
		testutil.AssertEqual(t, view.Ply, 1)
		testutil.AssertEqual(t, view.LastMove, "e2e4")
	}

	// A rejected move is reported only to its sender.
	send(t, black, ws.MessageTypeMove, ws.MovePayload{Move: "e7e4"})
	if msg := readError(t, black); msg == "" {
		t.Error("empty error message")
	}

	send(t, black, ws.MessageTypeUndo, nil)
	for _, conn := range []*websocket.Conn{white, black} {
		testutil.AssertEqual(t, readView(t, conn).Ply, 0)
	}

	send(t, white, ws.MessageTypeState, nil)
	view := readView(t, white)
	testutil.AssertEqual(t, view.ID, id)
	testutil.AssertEqual(t, view.SideToMove, "white")
}

func TestWebSocketBadMessages(t *testing.T) {
	addr, svc := serve(t, 0)
	id, err := svc.CreateGame("")
	testutil.AssertNoError(t, err)

	conn := dial(t, addr, id)
	readView(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	readError(t, conn)

	send(t, conn, "resign", nil)
	testutil.AssertEqual(t, readError(t, conn), "unknown message type: resign")

	send(t, conn, ws.MessageTypeMove, ws.MovePayload{Move: "z9z9"})
	readError(t, conn)

	// The connection is still usable.
	send(t, conn, ws.MessageTypeState, nil)
	testutil.AssertEqual(t, readView(t, conn).Ply, 0)
}

func TestWebSocketGameDeleted(t *testing.T) {
	addr, svc := serve(t, 0)
	id, err := svc.CreateGame("")
	testutil.AssertNoError(t, err)

	conn := dial(t, addr, id)
	readView(t, conn)

	testutil.AssertNoError(t, svc.DeleteGame(id))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second)) //nolint:errcheck // checked by ReadMessage
	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("read after delete: %v, want normal closure", err)
	}
}

func TestWebSocketUnknownGame(t *testing.T) {
	addr, _ := serve(t, 0)

	header := http.Header{"Origin": []string{origin}}
	_, resp, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws/games/missing", header)
	if err == nil {
		t.Fatal("dial to unknown game succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("response = %v, want 404", resp)
	}
}
