package entity

import (
	"time"

	"stakeholder-rag-be/internal/constant"

	"github.com/google/uuid"
)

// ChatSession is a role-scoped conversation bound to one ingested document set.
// Immutable after creation except for appended turns.
type ChatSession struct {
	Id        uuid.UUID
	Role      constant.Role
	Filenames []string
	CreatedAt time.Time
}
