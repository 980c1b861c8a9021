// internal/models/chat.go
package models

// ChatSender identifies who produced a transcript entry.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one entry in a session's assistant transcript.
type ChatMessage struct {
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}
