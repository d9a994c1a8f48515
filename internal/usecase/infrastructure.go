package usecase

import "context"

type EventPublisher interface {
	WriteMessage(ctx context.Context, req *WriteMessageReq) error
}
