// Package auth verifies Telegram Mini App init data and exposes the
// authenticated user to HTTP handlers.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strings"

	"github.com/dmtable/sheet-api/internal/errors"
)

// TelegramUser is the identity Telegram embeds in init data.
type TelegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// VerifyInitData checks the HMAC signature of a raw init data query string
// and returns the embedded user. The check string is every parameter except
// hash, as "key=value" lines sorted by key, signed with SHA-256 of the bot
// token.
func VerifyInitData(initData, botToken string) (*TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, errors.Unauthenticated("malformed init data")
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, errors.Unauthenticated("init data has no hash")
	}

	lines := make([]string, 0, len(values))
	for key, vals := range values {
		if key == "hash" || len(vals) == 0 {
			continue
		}
		lines = append(lines, key+"="+vals[0])
	}
	sort.Strings(lines)

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(strings.Join(lines, "\n")))
	wantHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(gotHash), []byte(wantHash)) {
		return nil, errors.Unauthenticated("init data signature mismatch")
	}

	return parseUser(values.Get("user"))
}

func parseUser(raw string) (*TelegramUser, error) {
	if raw == "" {
		return nil, errors.Unauthenticated("init data has no user")
	}
	var user TelegramUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, errors.Unauthenticated("init data user is not valid json")
	}
	if user.ID == 0 {
		return nil, errors.Unauthenticated("init data user has no id")
	}
	return &user, nil
}
