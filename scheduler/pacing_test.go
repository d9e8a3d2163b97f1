package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arborui/arbor/scheduler"
)

func TestRenderPacerThrottlesPerWindow(t *testing.T) {
	p := scheduler.NewRenderPacer(50*time.Millisecond, 1)

	assert.True(t, p.Allow(1), "burst of 1 must admit the first render")
	assert.False(t, p.Allow(1), "second render within the window must be throttled")
	assert.True(t, p.Allow(2), "a different window has its own independent budget")
}

func TestParallelWinHas(t *testing.T) {
	p := scheduler.ParallelLayout | scheduler.ParallelRender
	assert.True(t, p.Has(scheduler.ParallelLayout))
	assert.False(t, p.Has(scheduler.ParallelUpdate))
	assert.False(t, p.Has(scheduler.ParallelLayout|scheduler.ParallelEvent))
}
