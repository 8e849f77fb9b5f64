package entities

import (
	"fmt"

	"github.com/gonewx/superball/pkg/components"
	"github.com/gonewx/superball/pkg/config"
	"github.com/gonewx/superball/pkg/ecs"
	"github.com/gonewx/superball/pkg/physics"
	"github.com/gonewx/superball/pkg/types"
	"github.com/gonewx/superball/pkg/utils"
)

// Simulation 模拟状态
//
// 拥有实体管理器和物理引擎（刚体集合与求解器缓存），
// 只由所在场景按顺序访问。
type Simulation struct {
	EntityManager *ecs.EntityManager
	Engine        physics.Engine
	Mapper        utils.CoordinateMapper
	Ball          ecs.EntityID
}

// InitializeSimulation 创建模拟状态：一个小球，以及可选的地面
func InitializeSimulation(engine physics.Engine, cfg *config.SimConfig) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sim config cannot be nil")
	}
	mapper, err := cfg.CoordinateMapper()
	if err != nil {
		return nil, fmt.Errorf("invalid viewport: %w", err)
	}

	em := ecs.NewEntityManager()
	ball, err := NewBallEntity(em, engine, mapper, cfg.Ball, cfg.Render)
	if err != nil {
		return nil, err
	}

	if cfg.Floor.Enabled {
		if err := NewFloor(engine, mapper, cfg.Floor, float64(cfg.Window.Width)); err != nil {
			return nil, err
		}
	}

	return &Simulation{
		EntityManager: em,
		Engine:        engine,
		Mapper:        mapper,
		Ball:          ball,
	}, nil
}

// BallComponent 返回被追踪小球的组件
func (s *Simulation) BallComponent() (*components.BallComponent, bool) {
	return ecs.GetComponent[*components.BallComponent](s.EntityManager, s.Ball)
}

// BallPosition 返回小球当前的世界坐标
func (s *Simulation) BallPosition() (types.WorldVector, error) {
	ball, ok := s.BallComponent()
	if !ok {
		return types.WorldVector{}, fmt.Errorf("entity %d has no BallComponent", s.Ball)
	}
	return s.Engine.Translation(ball.Body)
}

// BallVelocity 返回小球当前的世界速度
func (s *Simulation) BallVelocity() (types.WorldVector, error) {
	ball, ok := s.BallComponent()
	if !ok {
		return types.WorldVector{}, fmt.Errorf("entity %d has no BallComponent", s.Ball)
	}
	return s.Engine.Velocity(ball.Body)
}
