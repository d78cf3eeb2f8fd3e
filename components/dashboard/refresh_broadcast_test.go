package dashboard

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastHookFansOut(t *testing.T) {
	hook := NewBroadcastHook()
	first, cancelFirst := hook.Subscribe()
	second, cancelSecond := hook.Subscribe()
	defer cancelSecond()
	assert.Equal(t, 2, hook.Subscribers())

	event := RefreshEvent{Collection: CollectionOrders, Reason: "order.created", At: fixedNow}
	require.NoError(t, hook.CollectionChanged(context.Background(), event))
	assert.Equal(t, event, <-first)
	assert.Equal(t, event, <-second)

	cancelFirst()
	cancelFirst()
	assert.Equal(t, 1, hook.Subscribers())
	_, open := <-first
	assert.False(t, open)
}

func TestBroadcastHookDropsForSlowSubscribers(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()

	for range subscriberBuffer + 3 {
		require.NoError(t, hook.CollectionChanged(context.Background(), RefreshEvent{Collection: CollectionOrders}))
	}
	assert.Len(t, events, subscriberBuffer)
}

func waitForSubscribers(t *testing.T, hook *BroadcastHook, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hook.Subscribers() == n }, time.Second, 5*time.Millisecond)
}

func TestBroadcastHookServeSSE(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeSSE))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	waitForSubscribers(t, hook, 1)
	require.NoError(t, hook.CollectionChanged(context.Background(), RefreshEvent{Collection: CollectionPayouts}))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: refresh\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "data: "))
	assert.Contains(t, line, `"payouts"`)
}

func TestBroadcastHookServeWebSocket(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	waitForSubscribers(t, hook, 1)
	require.NoError(t, hook.CollectionChanged(context.Background(), RefreshEvent{Collection: CollectionDrivers, Reason: "status"}))

	var got RefreshEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, CollectionDrivers, got.Collection)
	assert.Equal(t, "status", got.Reason)

	require.NoError(t, conn.Close())
	waitForSubscribers(t, hook, 0)
}
