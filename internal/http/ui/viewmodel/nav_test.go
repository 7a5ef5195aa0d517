package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavState_StartsClosed(t *testing.T) {
	nav := ClosedNav()
	assert.False(t, nav.Open())
}

func TestNavState_Toggle(t *testing.T) {
	nav := ClosedNav()

	nav = nav.Toggle()
	assert.True(t, nav.Open())

	nav = nav.Toggle()
	assert.False(t, nav.Open())
}

func TestNavState_CloseIsIdempotent(t *testing.T) {
	nav := ClosedNav().Toggle()
	assert.True(t, nav.Open())

	nav = nav.Close()
	assert.False(t, nav.Open())

	// Closing again stays closed.
	nav = nav.Close()
	assert.False(t, nav.Open())
}

func TestNavState_ToggleAfterClose(t *testing.T) {
	nav := ClosedNav().Toggle().Close()

	nav = nav.Toggle()
	assert.True(t, nav.Open())
}
