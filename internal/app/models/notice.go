package models

import "time"

type NoticeKind string

const (
	NoticeKindSuccess NoticeKind = "success"
	NoticeKindError   NoticeKind = "error"
)

// Notice is a transient user-facing message. A newer notice replaces the
// previous one and every notice expires on its own.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
}
