package ratelimiter

import (
	"sync"
	"time"
)

// Pacer は外部API呼び出しなどの操作の頻度を制限するインターフェースです。
type Pacer interface {
	Wait()
}

// IntervalPacer は連続する呼び出しの間に最低限の間隔を強制します。
// 銘柄ごとのプロバイダ呼び出しを一定間隔に抑え、上流APIのクォータを守ります。
type IntervalPacer struct {
	interval time.Duration // 呼び出し間の最低間隔
	mu       sync.Mutex
	last     time.Time
}

// NewIntervalPacer は新しいIntervalPacerのインスタンスを生成します。
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	return &IntervalPacer{interval: interval}
}

// Wait は前回の呼び出しから最低間隔が経過するまでブロックします。
// 初回の呼び出しは待機しません。
func (p *IntervalPacer) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		if d := p.interval - time.Since(p.last); d > 0 {
			time.Sleep(d)
		}
	}
	p.last = time.Now()
}
