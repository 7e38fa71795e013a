// Package flash queues one-shot notices for a client and hands them back on
// the next page it renders.
package flash

import (
	"github.com/gin-gonic/gin"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Store keeps notices between requests of the same client.
type Store interface {
	Add(c *gin.Context, n Notice) error
	Pop(c *gin.Context) ([]Notice, error)
}

func Info(msg string) Notice    { return Notice{Level: LevelInfo, Message: msg} }
func Success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }

// pendingKey holds notices added during the current request, so that Pop in
// the same request sees them before the response cookie round-trips.
const pendingKey = "flash.pending"

func pending(c *gin.Context) []Notice {
	if v, ok := c.Get(pendingKey); ok {
		if ns, ok := v.([]Notice); ok {
			return ns
		}
	}
	return nil
}
