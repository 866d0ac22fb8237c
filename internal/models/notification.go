package models

import "time"

// Notification is a full-bin alert. It never changes once created.
type Notification struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	BinID        int       `json:"binId"`
	SerialNumber string    `json:"serialNumber"`
	CreatedAt    time.Time `json:"-"`
}

// NotificationResponse is what we send to the client with ISO timestamps
type NotificationResponse struct {
	ID           string `json:"id"`
	Message      string `json:"message"`
	BinID        int    `json:"binId"`
	SerialNumber string `json:"serialNumber"`
	CreatedAtIso string `json:"createdAtIso"`
}

// ToNotificationResponse converts a Notification to NotificationResponse
func (n *Notification) ToNotificationResponse() NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		Message:      n.Message,
		BinID:        n.BinID,
		SerialNumber: n.SerialNumber,
		CreatedAtIso: n.CreatedAt.Format(time.RFC3339),
	}
}

// ToNotificationResponses converts a list in order
func ToNotificationResponses(list []Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(list))
	for i := range list {
		responses[i] = list[i].ToNotificationResponse()
	}
	return responses
}
