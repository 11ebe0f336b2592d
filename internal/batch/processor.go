package batch

import (
	"fmt"

	"fomo-app/internal/apperr"
	"fomo-app/internal/friendship"
	"fomo-app/internal/logger"
	"fomo-app/internal/models"
)

type ResponseRecorder interface {
	Record(userID, eventID string, value models.ResponseValue, invitedBy string) (*models.ResponseEntry, error)
}

type FriendshipWriter interface {
	Get(id string) (*models.Friendship, error)
	Upsert(fromUserID, toUserID string, status models.FriendshipStatus) (*friendship.UpsertResult, error)
	Delete(id string) error
}

// Processor applies a list of heterogeneous user actions sequentially, in
// caller order, with per-action failure isolation: one bad action is logged
// and skipped, the rest still run. Internal calls are direct typed calls
// into the services, never transport-shaped.
type Processor struct {
	Responses   ResponseRecorder
	Friendships FriendshipWriter
	Logger      *logger.Logger
}

func NewProcessor(responses ResponseRecorder, friendships FriendshipWriter, log *logger.Logger) *Processor {
	return &Processor{Responses: responses, Friendships: friendships, Logger: log}
}

// Process runs the batch for userID. Processed counts only the actions that
// completed without error; Results holds one entry per success. Unrecognized
// action types are skipped without counting or erroring.
func (p *Processor) Process(actions []models.BatchAction, userID string) (*models.BatchResult, error) {
	if len(actions) == 0 {
		return nil, apperr.Validation("actions", "must be a non-empty list")
	}
	if userID == "" {
		return nil, apperr.Validation("user_id", "required")
	}

	result := &models.BatchResult{
		Total:   len(actions),
		Results: []models.BatchActionResult{},
	}

	for i, action := range actions {
		outcome, known, err := p.apply(action, userID)
		if err != nil {
			p.logError(i, action.Type, err)
			continue
		}
		if !known {
			continue
		}
		result.Processed++
		result.Results = append(result.Results, outcome)
	}

	return result, nil
}

// apply runs one action. known is false for unrecognized types.
func (p *Processor) apply(action models.BatchAction, batchUserID string) (models.BatchActionResult, bool, error) {
	switch action.Type {
	case models.ActionEventResponse:
		return p.applyResponse(action, batchUserID)
	case models.ActionFriendshipAccept:
		return p.applyFriendshipStatus(action, models.FriendshipActive)
	case models.ActionFriendshipBlock:
		return p.applyFriendshipStatus(action, models.FriendshipBlocked)
	case models.ActionFriendshipRemove:
		return p.applyFriendshipRemove(action)
	default:
		return models.BatchActionResult{}, false, nil
	}
}

func (p *Processor) applyResponse(action models.BatchAction, batchUserID string) (models.BatchActionResult, bool, error) {
	// Action-level user overrides the batch-level one.
	targetUserID := batchUserID
	if action.UserID != "" {
		targetUserID = action.UserID
	}
	if action.EventID == "" {
		return models.BatchActionResult{}, true, apperr.Validation("event_id", "required for event_response")
	}

	value := models.NormalizeResponse(action.Response)
	entry, err := p.Responses.Record(targetUserID, action.EventID, value, action.InvitedBy)
	if err != nil {
		return models.BatchActionResult{}, true, err
	}
	return models.BatchActionResult{
		Type:       action.Type,
		EventID:    action.EventID,
		ResponseID: entry.ID,
	}, true, nil
}

// applyFriendshipStatus re-upserts the existing row with the new status,
// keeping the originally stored direction.
func (p *Processor) applyFriendshipStatus(action models.BatchAction, status models.FriendshipStatus) (models.BatchActionResult, bool, error) {
	if action.FriendshipID == "" {
		return models.BatchActionResult{}, true, apperr.Validation("friendship_id", "required for "+action.Type)
	}
	existing, err := p.Friendships.Get(action.FriendshipID)
	if err != nil {
		return models.BatchActionResult{}, true, err
	}
	upserted, err := p.Friendships.Upsert(existing.FromUserID, existing.ToUserID, status)
	if err != nil {
		return models.BatchActionResult{}, true, err
	}
	return models.BatchActionResult{
		Type:         action.Type,
		FriendshipID: upserted.ID,
	}, true, nil
}

func (p *Processor) applyFriendshipRemove(action models.BatchAction) (models.BatchActionResult, bool, error) {
	if action.FriendshipID == "" {
		return models.BatchActionResult{}, true, apperr.Validation("friendship_id", "required for friendship_remove")
	}
	if err := p.Friendships.Delete(action.FriendshipID); err != nil {
		return models.BatchActionResult{}, true, err
	}
	return models.BatchActionResult{
		Type:         action.Type,
		FriendshipID: action.FriendshipID,
	}, true, nil
}

func (p *Processor) logError(index int, actionType string, err error) {
	if p.Logger != nil {
		p.Logger.LogBatch("SKIP", fmt.Sprintf("action %d (%s) failed: %v", index, actionType, err))
		return
	}
	fmt.Printf("Batch action %d (%s) failed: %v\n", index, actionType, err)
}
