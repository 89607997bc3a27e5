package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestIntervalPacer_FirstCallDoesNotWait は初回呼び出しが待機しないことを検証します。
func TestIntervalPacer_FirstCallDoesNotWait(t *testing.T) {
	t.Parallel()

	p := NewIntervalPacer(time.Second)

	start := time.Now()
	p.Wait()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

// TestIntervalPacer_EnforcesInterval は連続呼び出しの間に最低間隔が
// 挟まれることを検証します。
func TestIntervalPacer_EnforcesInterval(t *testing.T) {
	t.Parallel()

	const interval = 50 * time.Millisecond
	p := NewIntervalPacer(interval)

	p.Wait()
	start := time.Now()
	p.Wait()
	assert.GreaterOrEqual(t, time.Since(start), interval)
}

// TestIntervalPacer_NoWaitAfterIntervalElapsed は間隔経過後の呼び出しが
// 追加で待機しないことを検証します。
func TestIntervalPacer_NoWaitAfterIntervalElapsed(t *testing.T) {
	t.Parallel()

	const interval = 20 * time.Millisecond
	p := NewIntervalPacer(interval)

	p.Wait()
	time.Sleep(2 * interval)

	start := time.Now()
	p.Wait()
	assert.Less(t, time.Since(start), interval)
}
