// Package viewer opens a window and renders the still life with a fly camera.
//
// Controls: W/S/A/D move forward, back, left and right, Q/E move up and down,
// the mouse looks around and the scroll wheel zooms. Holding P switches to an
// orthographic projection. Escape closes the window.
package viewer

import (
	"context"

	"github.com/soypat/stilllife/config"
)

// Config configures [Run].
type Config struct {
	config.Config
	// Context cancels the render loop when done. May be nil.
	Context context.Context
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// buttonMessage returns the line logged when a mouse button changes state.
func buttonMessage(b MouseButton, pressed bool) string {
	var name string
	switch b {
	case MouseLeft:
		name = "Left"
	case MouseMiddle:
		name = "Middle"
	case MouseRight:
		name = "Right"
	default:
		return "Unhandled mouse button event"
	}
	if pressed {
		return name + " mouse button pressed"
	}
	return name + " mouse button released"
}
