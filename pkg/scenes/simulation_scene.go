package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/superball/pkg/config"
	"github.com/gonewx/superball/pkg/entities"
	"github.com/gonewx/superball/pkg/game"
	"github.com/gonewx/superball/pkg/physics"
	"github.com/gonewx/superball/pkg/render"
	"github.com/gonewx/superball/pkg/systems"
	"github.com/gonewx/superball/pkg/types"
)

// SimulationScene runs the single-ball simulation.
// Each frame it steps physics first, then draws the ball with the post-step position.
type SimulationScene struct {
	simulation    *entities.Simulation
	physicsSystem *systems.PhysicsSystem
	renderSystem  *systems.BallRenderSystem
	background    color.Color

	elapsedTime float64 // Total simulated time in seconds
}

var _ game.Scene = (*SimulationScene)(nil)

// Sample is a snapshot of the tracked ball.
type Sample struct {
	Time     float64
	Position types.WorldVector
	Velocity types.WorldVector
	Screen   types.ScreenVector
}

// NewSimulationScene creates the simulation state and its systems.
func NewSimulationScene(engine physics.Engine, cfg *config.SimConfig) (*SimulationScene, error) {
	sim, err := entities.InitializeSimulation(engine, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize simulation: %w", err)
	}

	log.Printf("[SimulationScene] Initialized: gravity=(%.1f, %.1f) floor=%v",
		cfg.Physics.Gravity.X, cfg.Physics.Gravity.Y, cfg.Floor.Enabled)

	return &SimulationScene{
		simulation:    sim,
		physicsSystem: systems.NewPhysicsSystem(sim.Engine, cfg.Physics),
		renderSystem:  systems.NewBallRenderSystem(sim.EntityManager, sim.Engine, sim.Mapper),
		background:    cfg.Render.Background.Color(),
	}, nil
}

// Update steps the physics simulation. Physics stepping never fails.
func (s *SimulationScene) Update(deltaTime float64) error {
	s.physicsSystem.Update(deltaTime)
	s.elapsedTime += s.physicsSystem.Params().Dt
	return nil
}

// Draw clears the canvas with the background colour, draws the ball and submits the frame.
func (s *SimulationScene) Draw(canvas render.Canvas) error {
	canvas.Fill(s.background)

	if err := s.renderSystem.Draw(canvas); err != nil {
		return err
	}

	if err := canvas.Finish(); err != nil {
		return fmt.Errorf("failed to finish frame: %w", err)
	}
	return nil
}

// Simulation returns the owned simulation state.
func (s *SimulationScene) Simulation() *entities.Simulation {
	return s.simulation
}

// ElapsedTime returns the total simulated time in seconds.
func (s *SimulationScene) ElapsedTime() float64 {
	return s.elapsedTime
}

// Sample returns the current state of the tracked ball.
func (s *SimulationScene) Sample() (Sample, error) {
	pos, err := s.simulation.BallPosition()
	if err != nil {
		return Sample{}, err
	}
	vel, err := s.simulation.BallVelocity()
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		Time:     s.elapsedTime,
		Position: pos,
		Velocity: vel,
		Screen:   s.simulation.Mapper.WorldToScreen(pos),
	}, nil
}
