package handlers

import (
	"sync"
	"testing"
	"time"

	"fluidbook/pkg/models"
)

func newFeedClient(buffer int) *wsClient {
	return &wsClient{send: make(chan WebSocketMessage, buffer)}
}

func recvMessage(t *testing.T, ch chan WebSocketMessage) WebSocketMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for feed message")
		return WebSocketMessage{}
	}
}

func waitForClients(t *testing.T, h *WebSocketHandler, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.ConnectedClients() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("connected clients = %d, want %d", h.ConnectedClients(), want)
}

func TestBookingFeedDeliversToRegisteredClients(t *testing.T) {
	h := NewWebSocketHandler(nil)
	client := newFeedClient(4)
	h.hub.register <- client

	if msg := recvMessage(t, client.send); msg.Type != "connection" {
		t.Fatalf("welcome type = %q, want connection", msg.Type)
	}
	waitForClients(t, h, 1)

	h.BroadcastNewBooking(&models.Booking{CustomerName: "Alex Chen"})
	msg := recvMessage(t, client.send)
	if msg.Type != "booking_created" {
		t.Errorf("broadcast type = %q, want booking_created", msg.Type)
	}
	booking, ok := msg.Data.(*models.Booking)
	if !ok || booking.CustomerName != "Alex Chen" {
		t.Errorf("broadcast data = %#v, want the new booking", msg.Data)
	}

	h.hub.unregister <- client
	waitForClients(t, h, 0)
	if _, open := <-client.send; open {
		t.Error("send channel should be closed after unregister")
	}
}

func TestBookingFeedDropsSlowClients(t *testing.T) {
	h := NewWebSocketHandler(nil)
	fast := newFeedClient(16)
	slow := newFeedClient(1)
	h.hub.register <- fast
	h.hub.register <- slow
	recvMessage(t, fast.send)
	// The slow client never drains, so its welcome fills the buffer
	waitForClients(t, h, 2)

	h.BroadcastNewBooking(&models.Booking{CustomerName: "Jordan Lee"})
	recvMessage(t, fast.send)
	waitForClients(t, h, 1)
}

func TestBookingFeedConcurrentBroadcasts(t *testing.T) {
	h := NewWebSocketHandler(nil)
	client := newFeedClient(256)
	h.hub.register <- client
	recvMessage(t, client.send)
	waitForClients(t, h, 1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				h.BroadcastNewBooking(&models.Booking{})
				h.ConnectedClients()
			}
		}()
	}
	wg.Wait()

	for i := 0; i < 80; i++ {
		recvMessage(t, client.send)
	}
	waitForClients(t, h, 1)
}
