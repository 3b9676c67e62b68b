package models

import (
	"encoding/json"
	"time"
)

// IdempotencyKey represents a stored idempotency key record
type IdempotencyKey struct {
	Key          string          `json:"key"`
	Route        string          `json:"route"`
	ResponseBody json.RawMessage `json:"response_body"`
	StatusCode   int             `json:"status_code"`
	CreatedAt    time.Time       `json:"created_at"`
}
