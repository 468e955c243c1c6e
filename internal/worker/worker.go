package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Task 背景工作，回傳的錯誤只會被記錄
type Task func(ctx context.Context) error

// Pool 固定數量 worker 的背景工作池
type Pool interface {
	// Submit 佇列已滿或已停止時丟棄工作並回傳 false，不會阻塞請求
	Submit(Task) bool
	Stop()
}

// NewPool 建立 n 個 worker，佇列長度為 queue；n<=0 時為 1
func NewPool(n, queue int, logger zerolog.Logger) Pool {
	if n <= 0 {
		n = 1
	}
	if queue < 0 {
		queue = 0
	}
	p := &pool{jobs: make(chan Task, queue), logger: logger}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					p.run(job)
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs   chan Task
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	logger zerolog.Logger
}

func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- t:
		return true
	default:
		p.logger.Warn().Msg("worker queue full, task dropped")
		return false
	}
}

// Stop 等待佇列中的工作完成，可重複呼叫
func (p *pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *pool) run(job Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("worker task panicked")
		}
	}()
	if err := job(context.Background()); err != nil {
		p.logger.Error().Err(err).Msg("worker task failed")
	}
}
