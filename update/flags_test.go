package update_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arborui/arbor/update"
)

func TestFlagsBitValues(t *testing.T) {
	assert.Equal(t, update.Flags(0x01), update.UPDATE)
	assert.Equal(t, update.Flags(0x02), update.LAYOUT)
	assert.Equal(t, update.Flags(0x04), update.RENDER)
	assert.Equal(t, update.Flags(0x08), update.RENDER_UPDATE)
	assert.Equal(t, update.Flags(0x10), update.INFO)
	assert.Equal(t, update.Flags(0x80), update.REINIT)
}

func TestReinitDoesNotPropagate(t *testing.T) {
	f := update.REINIT | update.LAYOUT
	assert.Equal(t, update.LAYOUT, f.Propagable())
}

// Testable property 6: render-supersedes.
func TestResolveRenderSupersedesRenderUpdate(t *testing.T) {
	render, renderUpdate := update.ResolveRender(update.RENDER | update.RENDER_UPDATE)
	assert.True(t, render)
	assert.False(t, renderUpdate)
}

func TestResolveRenderUpdateAloneWhenNoRender(t *testing.T) {
	render, renderUpdate := update.ResolveRender(update.RENDER_UPDATE)
	assert.False(t, render)
	assert.True(t, renderUpdate)
}

func TestResolveRenderNeitherWhenEmpty(t *testing.T) {
	render, renderUpdate := update.ResolveRender(0)
	assert.False(t, render)
	assert.False(t, renderUpdate)
}
