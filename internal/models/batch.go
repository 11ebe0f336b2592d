package models

// Batch action types accepted by the batch processor. Anything else is
// skipped without failing the batch.
const (
	ActionEventResponse    = "event_response"
	ActionFriendshipAccept = "friendship_accept"
	ActionFriendshipBlock  = "friendship_block"
	ActionFriendshipRemove = "friendship_remove"
)

// BatchAction is one heterogeneous user action submitted in a batch.
type BatchAction struct {
	Type         string `json:"type"`
	EventID      string `json:"event_id,omitempty"`
	UserID       string `json:"user_id,omitempty"` // overrides the batch-level user when set
	Response     string `json:"response,omitempty"`
	FriendshipID string `json:"friendship_id,omitempty"`
	InvitedBy    string `json:"invited_by,omitempty"`
}

// BatchActionResult describes one successfully processed action.
type BatchActionResult struct {
	Type         string `json:"type"`
	EventID      string `json:"event_id,omitempty"`
	FriendshipID string `json:"friendship_id,omitempty"`
	ResponseID   string `json:"response_id,omitempty"`
}

// BatchResult is the outcome of a whole batch. Processed counts only the
// actions that completed without error.
type BatchResult struct {
	Processed int                 `json:"processed"`
	Total     int                 `json:"total"`
	Results   []BatchActionResult `json:"results"`
}
