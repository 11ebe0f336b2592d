package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

func GenerateEventID() string {
	return "evt_" + uuid.New().String()
}

func GenerateResponseID() string {
	timestamp := time.Now().UnixNano()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("rsp_%d_%06d", timestamp, randomNum.Int64())
}

// GenerateFriendshipID derives the canonical id for a directed pair. The
// same pair in the same direction always yields the same id; callers must
// probe both directions before creating.
func GenerateFriendshipID(fromUserID, toUserID string) string {
	return fmt.Sprintf("frd_%s_%s", fromUserID, toUserID)
}

func GenerateUserID() string {
	return "usr_" + uuid.New().String()
}
