package models

// NotificationLevel picks the toast colour
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Notification is a user-visible toast message
type Notification struct {
	Message string            `json:"message"`
	Level   NotificationLevel `json:"level"`
}
