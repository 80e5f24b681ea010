package entity

import "time"

type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Notification is a transient message for the session owner. It is dropped
// once read.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Kind    RemoteKind        `json:"kind,omitempty"`
	Token   uint64            `json:"token"`
	At      time.Time         `json:"at"`
}
