package systems

import (
	"fmt"

	"github.com/gonewx/superball/pkg/components"
	"github.com/gonewx/superball/pkg/ecs"
	"github.com/gonewx/superball/pkg/physics"
	"github.com/gonewx/superball/pkg/render"
	"github.com/gonewx/superball/pkg/types"
	"github.com/gonewx/superball/pkg/utils"
)

// BallRenderSystem 绘制小球
//
// 读取刚体在本帧物理步之后的位置，转换到屏幕坐标后提交填充圆网格。
type BallRenderSystem struct {
	entityManager *ecs.EntityManager
	engine        physics.Engine
	mapper        utils.CoordinateMapper
}

// NewBallRenderSystem 创建小球渲染系统
func NewBallRenderSystem(em *ecs.EntityManager, engine physics.Engine, mapper utils.CoordinateMapper) *BallRenderSystem {
	return &BallRenderSystem{
		entityManager: em,
		engine:        engine,
		mapper:        mapper,
	}
}

// Draw 为每个小球实体发出一次绘制调用
//
// 网格构建失败或画布返回错误时立即返回，不做恢复。
func (s *BallRenderSystem) Draw(canvas render.Canvas) error {
	entities := ecs.GetEntitiesWith2[*components.BallComponent, *components.CircleSpriteComponent](s.entityManager)

	for _, id := range entities {
		ball, _ := ecs.GetComponent[*components.BallComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.CircleSpriteComponent](s.entityManager, id)

		pos, err := s.engine.Translation(ball.Body)
		if err != nil {
			return fmt.Errorf("ball %d: %w", id, err)
		}

		center := s.mapper.WorldToScreen(pos)
		radius := s.mapper.WorldLengthToScreen(ball.WorldRadius)

		// 网格以原点为圆心，通过绘制位置平移到小球中心
		mesh, err := render.NewCircleMesh(types.ScreenVector{}, radius, sprite.Tolerance, sprite.Color)
		if err != nil {
			return fmt.Errorf("ball %d: failed to build circle mesh: %w", id, err)
		}

		if err := canvas.DrawMesh(mesh, center); err != nil {
			return fmt.Errorf("ball %d: failed to draw: %w", id, err)
		}
	}

	return nil
}
