package store

import (
	"encoding/json"
	"fmt"

	"debt-ledger-go/internal/models"
)

// EncodeSnapshot renders a snapshot as the raw key/value pairs backends persist.
func EncodeSnapshot(snapshot models.Snapshot) (map[string]string, error) {
	users := snapshot.Users
	if users == nil {
		users = []models.UserRecord{}
	}
	usersJSON, err := json.Marshal(users)
	if err != nil {
		return nil, fmt.Errorf("unable to encode users: %w", err)
	}

	var lastActive any
	if snapshot.LastActiveUser != "" {
		lastActive = snapshot.LastActiveUser
	}
	lastActiveJSON, err := json.Marshal(lastActive)
	if err != nil {
		return nil, fmt.Errorf("unable to encode last active user: %w", err)
	}

	return map[string]string{
		KeyUsers:          string(usersJSON),
		KeyLastActiveUser: string(lastActiveJSON),
	}, nil
}

// DecodeSnapshot rebuilds a snapshot from raw key/value pairs. The two keys are
// decoded independently.
//
// ErrSnapshotNotFound is returned only when neither key is present. A missing users
// key alone yields an empty list; an undecodable one wraps ErrCorruptSnapshot, and
// the returned snapshot still carries the last active user. That name is best
// effort: missing, null or malformed values decode as empty.
func DecodeSnapshot(values map[string]string) (models.Snapshot, error) {
	snapshot := models.Snapshot{Users: []models.UserRecord{}}

	rawActive, hasActive := values[KeyLastActiveUser]
	if hasActive {
		var name *string
		if err := json.Unmarshal([]byte(rawActive), &name); err == nil && name != nil {
			snapshot.LastActiveUser = *name
		}
	}

	rawUsers, hasUsers := values[KeyUsers]
	if !hasUsers {
		if !hasActive {
			return snapshot, ErrSnapshotNotFound
		}
		return snapshot, nil
	}

	var users []models.UserRecord
	if err := json.Unmarshal([]byte(rawUsers), &users); err != nil {
		return snapshot, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, KeyUsers, err)
	}
	if users != nil {
		snapshot.Users = users
	}
	return snapshot, nil
}
