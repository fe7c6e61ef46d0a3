// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Hook закрывает один ресурс приложения при завершении.
type Hook func(context.Context) error

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM,
// затем выполняет все хуки в рамках заданного timeout.
func Wait(timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	<-sigCh

	Run(timeout, hooks...)
}

// Run выполняет все хуки параллельно и возвращается, когда они
// завершились либо истек timeout.
func Run(timeout time.Duration, hooks ...Hook) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var pending sync.WaitGroup
	for _, hook := range hooks {
		pending.Add(1)
		go func(fn Hook) {
			defer pending.Done()
			_ = fn(ctx)
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		pending.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
