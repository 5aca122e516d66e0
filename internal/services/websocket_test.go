package services

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestClient(hub *Hub, id uint, userType string) *Client {
	return &Client{
		ID:       id,
		UserType: userType,
		Send:     make(chan []byte, 8),
		Hub:      hub,
	}
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.GetConnectedClients() != want {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d clients", want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, 1, "learner")
	hub.register <- client
	waitForClients(t, hub, 1)

	hub.unregister <- client
	waitForClients(t, hub, 0)

	if _, open := <-client.Send; open {
		t.Error("send channel should be closed after unregister")
	}
}

func TestNotifyBookingEventRouting(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	learner := newTestClient(hub, 7, "learner")
	tutor := newTestClient(hub, 3, "tutor")
	bystander := newTestClient(hub, 8, "learner")
	for _, c := range []*Client{learner, tutor, bystander} {
		hub.register <- c
	}
	waitForClients(t, hub, 3)

	hub.NotifyBookingEvent("booking_cancelled", BookingEvent{
		BookingID: 42,
		LearnerID: 7,
		TutorID:   3,
		Status:    "cancelled",
	})

	for _, c := range []*Client{learner, tutor} {
		select {
		case raw := <-c.Send:
			var msg WebSocketMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				t.Fatalf("bad message payload: %v", err)
			}
			if msg.Type != "booking_cancelled" {
				t.Errorf("expected booking_cancelled, got %s", msg.Type)
			}
		case <-time.After(time.Second):
			t.Fatalf("client %d (%s) never received the event", c.ID, c.UserType)
		}
	}

	select {
	case <-bystander.Send:
		t.Error("unrelated client should not receive the event")
	default:
	}
}

func TestSendToUserMatchesTypeAndID(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Same numeric ID on both sides of the marketplace
	learner := newTestClient(hub, 5, "learner")
	tutor := newTestClient(hub, 5, "tutor")
	hub.register <- learner
	hub.register <- tutor
	waitForClients(t, hub, 2)

	hub.SendToUser(5, "tutor", []byte("hello"))

	select {
	case <-tutor.Send:
	case <-time.After(time.Second):
		t.Fatal("tutor connection never received the message")
	}

	select {
	case <-learner.Send:
		t.Error("learner with the same ID should not receive a tutor message")
	default:
	}
}
