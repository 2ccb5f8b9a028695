package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialPair 建立一对WebSocket连接，返回服务端连接交给管理器，客户端连接用于读取
func dialPair(t *testing.T) (server *websocket.Conn, client *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	serverConns := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-serverConns:
	case <-time.After(5 * time.Second):
		t.Fatal("server side connection not established")
	}
	return server, client
}

func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocketManager_DropsMessagesWithoutConnection(t *testing.T) {
	wm := NewWebSocketManager()

	assert.False(t, wm.SendMessage("s1", WSMessage{Type: "update", Version: 1}))

	server, client := dialPair(t)
	wm.AddConnection("s1", server)
	assert.Equal(t, 1, wm.GetConnectionCount())

	require.True(t, wm.SendMessage("s1", WSMessage{Type: "live", Version: 2, Data: map[string]int{"brand_id": 3}}))
	msg := readMessage(t, client)
	assert.Equal(t, "live", msg.Type)
	assert.Equal(t, 2, msg.Version)
	assert.Equal(t, map[string]interface{}{"brand_id": float64(3)}, msg.Data)
}

func TestWebSocketManager_DropsOlderVersions(t *testing.T) {
	wm := NewWebSocketManager()
	server, client := dialPair(t)
	wm.AddConnection("s1", server)

	// v3 先到，随后晚到的 v2 和重复的 v3 都不再发送
	require.True(t, wm.SendMessage("s1", WSMessage{Type: "state", Version: 3}))
	assert.False(t, wm.SendMessage("s1", WSMessage{Type: "state", Version: 2}))
	assert.False(t, wm.SendMessage("s1", WSMessage{Type: "state", Version: 3}))
	require.True(t, wm.SendMessage("s1", WSMessage{Type: "state", Version: 4}))

	assert.Equal(t, 3, readMessage(t, client).Version)
	assert.Equal(t, 4, readMessage(t, client).Version)
}

func TestWebSocketManager_ConcurrentSendsArriveInOrder(t *testing.T) {
	wm := NewWebSocketManager()
	server, client := dialPair(t)
	wm.AddConnection("s1", server)

	var wg sync.WaitGroup
	for v := 1; v <= 20; v++ {
		wg.Add(1)
		go func(version int) {
			defer wg.Done()
			wm.SendMessage("s1", WSMessage{Type: "state", Version: version})
		}(v)
	}
	wg.Wait()
	wm.SendMessage("s1", WSMessage{Type: "done", Version: 21})

	last := 0
	for {
		msg := readMessage(t, client)
		assert.Greater(t, msg.Version, last)
		last = msg.Version
		if msg.Type == "done" {
			break
		}
	}
}

func TestWebSocketManager_NewConnectionStartsFresh(t *testing.T) {
	wm := NewWebSocketManager()
	firstServer, _ := dialPair(t)
	secondServer, secondClient := dialPair(t)

	wm.AddConnection("s1", firstServer)
	require.True(t, wm.SendMessage("s1", WSMessage{Type: "state", Version: 5}))

	wm.AddConnection("s1", secondServer)
	require.True(t, wm.SendMessage("s1", WSMessage{Type: "state", Version: 5}))
	assert.Equal(t, 5, readMessage(t, secondClient).Version)
}

func TestWebSocketManager_DropSession(t *testing.T) {
	wm := NewWebSocketManager()
	server, client := dialPair(t)

	wm.AddConnection("s1", server)
	wm.DropSession("s1")
	wm.DropSession("s2")

	assert.Zero(t, wm.GetConnectionCount())
	assert.False(t, wm.SendMessage("s1", WSMessage{Type: "state", Version: 1}))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := client.ReadMessage()
	assert.Error(t, err)
}

func TestWebSocketManager_ReplacesConnection(t *testing.T) {
	wm := NewWebSocketManager()
	firstServer, firstClient := dialPair(t)
	secondServer, secondClient := dialPair(t)

	wm.AddConnection("s1", firstServer)
	wm.AddConnection("s1", secondServer)
	assert.Equal(t, 1, wm.GetConnectionCount())

	wm.SendMessage("s1", WSMessage{Type: "update", Version: 1})
	assert.Equal(t, "update", readMessage(t, secondClient).Type)

	require.NoError(t, firstClient.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := firstClient.ReadMessage()
	assert.Error(t, err)
}

func TestWebSocketManager_ReleaseStaleConnection(t *testing.T) {
	wm := NewWebSocketManager()
	firstServer, _ := dialPair(t)
	secondServer, secondClient := dialPair(t)

	wm.AddConnection("s1", firstServer)
	wm.AddConnection("s1", secondServer)

	wm.ReleaseConnection("s1", firstServer)
	assert.Equal(t, 1, wm.GetConnectionCount())

	wm.SendMessage("s1", WSMessage{Type: "update", Version: 1})
	assert.Equal(t, "update", readMessage(t, secondClient).Type)

	wm.ReleaseConnection("s1", secondServer)
	assert.Zero(t, wm.GetConnectionCount())
}
