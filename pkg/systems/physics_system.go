package systems

import (
	"log"
	"math"

	"github.com/gonewx/superball/pkg/config"
	"github.com/gonewx/superball/pkg/physics"
	"github.com/gonewx/superball/pkg/types"
)

// PhysicsSystem 物理驱动
//
// 持有积分参数，每帧把实际经过的时间写入 Dt 后调用引擎单步积分。
// 积分、碰撞检测与约束求解全部由引擎完成。
type PhysicsSystem struct {
	engine physics.Engine
	params physics.IntegrationParameters
	steps  uint64
}

// NewPhysicsSystem 创建物理系统
func NewPhysicsSystem(engine physics.Engine, cfg config.PhysicsConfig) *PhysicsSystem {
	return &PhysicsSystem{
		engine: engine,
		params: physics.IntegrationParameters{
			Gravity:    types.WorldVector{X: cfg.Gravity.X, Y: cfg.Gravity.Y},
			Iterations: cfg.Iterations,
		},
	}
}

// Update 推进一个时间步
//
// deltaTime 为距上一帧经过的秒数。负数和非有限值按 0 处理，
// 时间步为 0 时引擎不会移动任何刚体。
func (s *PhysicsSystem) Update(deltaTime float64) {
	if deltaTime < 0 || math.IsNaN(deltaTime) || math.IsInf(deltaTime, 0) {
		log.Printf("[PhysicsSystem] Ignoring invalid delta time %v", deltaTime)
		deltaTime = 0
	}

	s.params.Dt = deltaTime
	s.engine.Step(&s.params)
	s.steps++
}

// Params 返回当前积分参数的副本
func (s *PhysicsSystem) Params() physics.IntegrationParameters {
	return s.params
}

// Steps 返回已执行的步数
func (s *PhysicsSystem) Steps() uint64 {
	return s.steps
}
