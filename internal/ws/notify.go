package ws

import (
	"encoding/json"
	"time"

	"quicksync/internal/repository"
)

type InvitationReceivedEvent struct {
	Type         string `json:"type"`
	InvitationID string `json:"invitation_id"`
	TeamID       string `json:"team_id"`
	TeamName     string `json:"team_name"`
	Message      string `json:"message"`
	Timestamp    string `json:"timestamp"`
}

// Notifier adapts the hub to the team usecase's notification port.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyInvitation(inv repository.Invitation) {
	if n == nil || n.hub == nil {
		return
	}

	evt := InvitationReceivedEvent{
		Type:         "invitation_received",
		InvitationID: inv.ID.String(),
		TeamID:       inv.TeamID.String(),
		TeamName:     inv.TeamName,
		Message:      inv.Message,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.SendToUser(inv.InviteeID, b)
}
