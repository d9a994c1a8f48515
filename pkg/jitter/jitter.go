// Package jitter добавляет случайный разброс к интервалам повторов, чтобы клиенты
// не повторяли запросы синхронно после общего сбоя.
package jitter

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает d с джиттером в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	jitter := globalRand.Float64() * jitterFactor * float64(d)
	randMutex.Unlock()
	return d + time.Duration(jitter)
}

// ExponentialBackoff удваивает base на каждую попытку (нумерация с нуля), не превышая max,
// и добавляет джиттер.
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > max {
			backoff = max
			break
		}
	}
	return Duration(backoff, jitterFactor)
}

// Policy описывает повторы для Retry.
type Policy struct {
	Attempts int // общее число попыток, не меньше 1
	Base     time.Duration
	Max      time.Duration
	Jitter   float64
}

// Retry вызывает fn, пока она не вернёт nil, не кончатся попытки или не отменится ctx.
// Возвращает последнюю ошибку fn либо ошибку контекста.
func Retry(ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) error) error {
	attempts := max(p.Attempts, 1)

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx, attempt); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}

		timer := time.NewTimer(ExponentialBackoff(p.Base, p.Max, attempt, p.Jitter))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return err
}
