package audit

import (
	"context"
	"time"
)

type Filter struct {
	Action    *Action
	ActorType *ActorType
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int64, error)
}
