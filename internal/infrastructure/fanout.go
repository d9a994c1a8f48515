package infrastructure

import (
	"context"
	"errors"

	"github.com/DRSN-tech/go-catalog/internal/usecase"
)

// Fanout отправляет каждое событие всем публикаторам по очереди.
// Сбой одного публикатора не мешает остальным; ошибки объединяются.
type Fanout []usecase.EventPublisher

// NewFanout отбрасывает nil-публикаторы. Возвращает nil, если не осталось ни одного.
func NewFanout(publishers ...usecase.EventPublisher) usecase.EventPublisher {
	var f Fanout
	for _, p := range publishers {
		if p != nil {
			f = append(f, p)
		}
	}

	switch len(f) {
	case 0:
		return nil
	case 1:
		return f[0]
	default:
		return f
	}
}

func (f Fanout) WriteMessage(ctx context.Context, req *usecase.WriteMessageReq) error {
	var errs []error
	for _, p := range f {
		if err := p.WriteMessage(ctx, req); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
