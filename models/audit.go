package models

import "time"

// RequestEvent is one append-only audit row for a gated call.
type RequestEvent struct {
	ID          int       `json:"request_id" db:"request_id"`
	EndpointID  int       `json:"endpoint_id" db:"endpoint_id"`
	UserID      int       `json:"user_id" db:"user_id"`
	RequestedAt time.Time `json:"requested_at" db:"requested_at"`
}

// APIStat aggregates audited requests per method and endpoint.
type APIStat struct {
	Method   string `json:"method"`
	Endpoint string `json:"endpoint"`
	Requests int    `json:"requests"`
}
