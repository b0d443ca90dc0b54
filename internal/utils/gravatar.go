package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives a deterministic avatar URL from an email address:
// 200px, PG rated, "mystery man" fallback.
func GravatarURL(email string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}
