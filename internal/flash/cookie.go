package flash

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	cookieName   = "messages"
	cookieMaxAge = 3600
	maxNotices   = 10
)

// CookieStore keeps notices in a client cookie.
type CookieStore struct {
	Secure bool
}

func NewCookieStore(secure bool) *CookieStore {
	return &CookieStore{Secure: secure}
}

var _ Store = (*CookieStore)(nil)

func (s *CookieStore) Add(c *gin.Context, n Notice) error {
	all := append(readCookie(c), pending(c)...)
	all = append(all, n)
	if len(all) > maxNotices {
		all = all[len(all)-maxNotices:]
	}

	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode notices: %w", err)
	}
	c.Set(pendingKey, append(pending(c), n))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, base64.RawURLEncoding.EncodeToString(raw), cookieMaxAge, "/", "", s.Secure, true)
	return nil
}

func (s *CookieStore) Pop(c *gin.Context) ([]Notice, error) {
	out := readCookie(c)
	_, cerr := c.Cookie(cookieName)
	out = append(out, pending(c)...)
	c.Set(pendingKey, []Notice(nil))

	if cerr == nil || len(out) > 0 {
		c.SetCookie(cookieName, "", -1, "/", "", s.Secure, true)
	}
	return out, nil
}

// readCookie decodes the request cookie; a tampered cookie reads as empty.
func readCookie(c *gin.Context) []Notice {
	v, err := c.Cookie(cookieName)
	if err != nil || v == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return nil
	}
	var ns []Notice
	if err := json.Unmarshal(raw, &ns); err != nil {
		return nil
	}
	return ns
}
