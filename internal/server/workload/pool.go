package workload

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool ограничивает число одновременно выполняемых CPU-задач,
// чтобы тяжёлые запросы не забирали все ядра у остальных обработчиков.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool создаёт пул на workers задач. workers <= 0 означает runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers)), size: workers}
}

// Size возвращает ёмкость пула.
func (p *Pool) Size() int { return p.size }

// Do выполняет fn в отдельной горутине, как только в пуле освободится слот,
// и ждёт результата.
//
// Если ctx отменён раньше, Do возвращает ctx.Err(); уже запущенная задача
// доработает и освободит слот сама. Паника внутри fn превращается в ошибку.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("workload panic: %v", r)
			}
		}()
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
