package game

import "github.com/gonewx/superball/pkg/render"

// Scene represents a running simulation scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64) error

	// Draw renders the scene onto the provided canvas.
	// An error aborts the frame and terminates the run.
	Draw(canvas render.Canvas) error
}
