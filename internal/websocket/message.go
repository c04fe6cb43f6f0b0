package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewEventMessage marshals an action/payload pair for broadcast. Marshal
// errors degrade to an empty payload rather than dropping the event.
func NewEventMessage(action string, payload interface{}) []byte {
	b, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		b, _ = json.Marshal(Message{Action: action})
	}
	return b
}
