package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"go.uber.org/zap"
)

// Job 隊列工作
type Job func(ctx context.Context) (interface{}, error)

// request 隊列請求
type request struct {
	ctx    context.Context
	job    Job
	result chan Result
}

// Result 處理結果
type Result struct {
	Value interface{}
	Error error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	FailedCount    int64 `json:"failed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Manager 隊列管理器
type Manager struct {
	config    *config.QueueConfig
	queue     chan *request
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	processed int64
	failed    int64
}

// NewManager 創建新的隊列管理器並啟動 workers
func NewManager(cfg *config.QueueConfig) *Manager {
	m := &Manager{
		config: cfg,
		queue:  make(chan *request, cfg.MaxSize),
	}

	for i := 0; i < cfg.Workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	common.LogInfo("隊列已啟動",
		zap.Int("workers", cfg.Workers),
		zap.Int("max_queue_size", cfg.MaxSize),
	)
	return m
}

// Submit 將工作加入隊列，結果由返回的 channel 送出一次
func (m *Manager) Submit(ctx context.Context, job Job) (<-chan Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, common.ErrQueueClosed
	}

	req := &request{
		ctx:    ctx,
		job:    job,
		result: make(chan Result, 1),
	}

	select {
	case m.queue <- req:
		common.LogDebug("Request enqueued",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.config.MaxSize),
		)
		return req.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return nil, common.ErrQueueFull
	}
}

// worker 處理隊列中的工作
func (m *Manager) worker(id int) {
	defer m.wg.Done()

	for req := range m.queue {
		// 請求已取消就不再執行
		if err := req.ctx.Err(); err != nil {
			atomic.AddInt64(&m.failed, 1)
			req.result <- Result{Error: err}
			continue
		}

		value, err := req.job(req.ctx)
		if err != nil {
			atomic.AddInt64(&m.failed, 1)
			common.LogDebug("工作失敗", zap.Int("worker", id), zap.Error(err))
		}
		atomic.AddInt64(&m.processed, 1)
		req.result <- Result{Value: value, Error: err}
	}
}

// Status 獲取隊列狀態
func (m *Manager) Status() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: atomic.LoadInt64(&m.processed),
		FailedCount:    atomic.LoadInt64(&m.failed),
		MaxQueueSize:   m.config.MaxSize,
		Workers:        m.config.Workers,
	}
}

// Close 停止接收新工作，等待已排隊的工作完成
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()

	m.wg.Wait()
	common.LogInfo("隊列已關閉", zap.Int64("processed", atomic.LoadInt64(&m.processed)))
}
