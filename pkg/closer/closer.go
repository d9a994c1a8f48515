// Package closer закрывает ресурсы приложения в порядке, обратном регистрации.
package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/go-catalog/pkg/logger"
)

const (
	defaultForcedTimeout = 2 * time.Second

	// allClosed — stopIdx, когда все функции отработали до отмены контекста
	allClosed = -1
)

// Func — функция закрытия ресурса.
type Func func(ctx context.Context) error

type namedFunc struct {
	name string
	fn   Func
}

// Closer потокобезопасно собирает функции закрытия и вызывает их один раз.
type Closer struct {
	funcs         []namedFunc
	mu            sync.Mutex
	once          sync.Once
	forcedTimeout time.Duration
	logger        logger.Logger
}

// NewCloser создаёт Closer. forcedTimeout — время на принудительное закрытие ресурсов,
// до которых не дошла очередь, когда истёк контекст Close. Ноль означает 2 секунды.
func NewCloser(forcedTimeout time.Duration, logger logger.Logger) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{
		forcedTimeout: forcedTimeout,
		logger:        logger,
	}
}

// Add регистрирует функцию закрытия под именем, которое попадёт в логи и ошибки.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, namedFunc{name: name, fn: f})
}

// AddCloser регистрирует ресурс с методом Close() error, который не принимает контекст.
func (c *Closer) AddCloser(name string, r interface{ Close() error }) {
	c.Add(name, func(context.Context) error {
		return r.Close()
	})
}

// Close вызывает функции в порядке LIFO. Если ctx отменяется раньше, оставшиеся функции
// запускаются параллельно с собственным таймаутом. Повторные вызовы ничего не делают.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.mu.Unlock()

		stopIdx, errs := c.gracefulClose(ctx, funcs)
		if stopIdx == allClosed {
			if len(errs) > 0 {
				err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
			}
			return
		}

		remaining := funcs[:stopIdx+1]
		c.logger.Warnf("Shutdown timed out, forcing %d resource(s) to close", len(remaining))
		errs = append(errs, c.forcedClose(remaining)...)

		err = fmt.Errorf(
			"shutdown interrupted after %d/%d funcs:\n%s",
			len(funcs)-1-stopIdx,
			len(funcs),
			strings.Join(errs, "\n"),
		)
	})

	return err
}

func (c *Closer) gracefulClose(ctx context.Context, funcs []namedFunc) (int, []string) {
	var errs []string
	for i := len(funcs) - 1; i >= 0; i-- {
		var (
			f    = funcs[i]
			done = make(chan error, 1)
		)

		go func() {
			done <- f.fn(ctx)
		}()

		select {
		case err := <-done:
			if err != nil {
				c.logger.Errorf(err, "Failed to close %s", f.name)
				errs = append(errs, fmt.Sprintf("[!] %s: %v", f.name, err))
				continue
			}
			c.logger.Debugf("Closed %s", f.name)
		case <-ctx.Done():
			return i, errs
		}
	}

	return allClosed, errs
}

func (c *Closer) forcedClose(funcs []namedFunc) []string {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []string
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, f := range funcs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("[FORCED] %s: %v", f.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
