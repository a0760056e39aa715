package core

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunGuard(t *testing.T) {
	var g RunGuard
	assert.Equal(t, Idle, g.State())
	assert.True(t, g.TryStart())
	assert.Equal(t, "running", g.State().String())
	assert.False(t, g.TryStart())
	g.Finish()
	assert.Equal(t, "idle", g.State().String())
	assert.True(t, g.TryStart())
}

func TestRunGuard_SingleWinner(t *testing.T) {
	var g RunGuard
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryStart() {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}
