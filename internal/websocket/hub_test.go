package websocket

import (
	"testing"
	"time"
)

func newFeedClient(key string) *Client {
	return &Client{FeedKey: key, Send: make(chan []byte, 16)}
}

func recvOrTimeout(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message within a second")
		return nil
	}
}

func TestHubRoutesByFeedKey(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcher := newFeedClient("7")
	other := newFeedClient("8")
	hub.Register <- watcher
	hub.Register <- other

	hub.Publish(7, []byte("hello"))

	if got := recvOrTimeout(t, watcher.Send); string(got) != "hello" {
		t.Errorf("message = %q, want hello", got)
	}
	select {
	case msg := <-other.Send:
		t.Errorf("feed 8 received %q meant for feed 7", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newFeedClient("7")
	hub.Register <- client
	hub.Unregister <- client

	select {
	case _, open := <-client.Send:
		if open {
			t.Error("send channel delivered a message instead of closing")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed within a second")
	}
}

func TestHubPublishToEmptyFeedDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish(99, []byte("noise"))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no subscribers")
	}
}
