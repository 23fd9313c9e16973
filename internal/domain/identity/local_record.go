// internal/domain/identity/local_record.go
package identity

import (
	"encoding/json"
	"errors"
	"strings"
)

// LocalRecordKey is the durable local storage key of the serialized identity.
const LocalRecordKey = "user"

func EncodeRecord(u *Identity) (string, error) {
	if u == nil {
		return "", errors.New("identity: nil record")
	}
	c := u.Clone()
	if c.Favorites == nil {
		c.Favorites = []string{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeRecord(raw string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("identity: empty record")
	}
	var u Identity
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}
	if strings.TrimSpace(u.UID) == "" {
		return nil, errors.New("identity: record has no uid")
	}
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	return &u, nil
}

// CachedFavorites parses the favorites of a stored record.
// Anything unreadable yields an empty list.
func CachedFavorites(raw string) []string {
	var rec struct {
		Favorites []any `json:"favorites"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &rec); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(rec.Favorites))
	for _, v := range rec.Favorites {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
