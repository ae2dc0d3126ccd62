package session

import (
	"encoding/json"
	"strings"

	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

// MaxRecent is the number of recent searches kept per session.
const MaxRecent = 5

const recentKey = "recent_searches"

// PushRecent returns the recent-search list with city inserted at the front.
// An already-present entry (compared case-insensitively) is moved, not
// duplicated, and the list never grows beyond MaxRecent.
func PushRecent(list []string, city string) []string {
	out := make([]string, 0, MaxRecent)
	out = append(out, city)
	for _, existing := range list {
		if strings.EqualFold(existing, city) {
			continue
		}
		out = append(out, existing)
		if len(out) == MaxRecent {
			break
		}
	}
	return out
}

// RecentSearches loads the recent-search list from a session. A missing or
// corrupt value yields an empty list.
func RecentSearches(sess *fibersession.Session) []string {
	raw, ok := sess.Get(recentKey).(string)
	if !ok || raw == "" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

// SaveRecentSearches stores the recent-search list in a session.
func SaveRecentSearches(sess *fibersession.Session, list []string) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	sess.Set(recentKey, string(raw))
	return sess.Save()
}
