package models

// ConversationState represents the state of a conversation with a user
type ConversationState int

const (
	// Default is the initial state
	Default ConversationState = iota
	// AwaitingDuration is the state when the user is inputting a subscription
	// duration in days
	AwaitingDuration
	// AwaitingBroadcastText is the state when an admin is inputting the
	// broadcast message
	AwaitingBroadcastText
)

// UserState represents the state of a user's conversation
type UserState struct {
	State ConversationState
}
