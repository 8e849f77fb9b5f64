package entities

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/superball/pkg/components"
	"github.com/gonewx/superball/pkg/config"
	"github.com/gonewx/superball/pkg/ecs"
	"github.com/gonewx/superball/pkg/physics"
	"github.com/gonewx/superball/pkg/types"
	"github.com/gonewx/superball/pkg/utils"
)

// NewBallEntity 创建小球实体
//
// 在物理引擎中插入一个动态刚体并挂载圆形碰撞体，再创建带有
// BallComponent 和 CircleSpriteComponent 的实体。
//
// 参数:
//   - em: 实体管理器
//   - engine: 物理引擎，拥有刚体的生命周期
//   - mapper: 坐标映射器，用于把屏幕坐标的出生点转换为世界坐标
//   - ball: 小球参数
//   - render: 渲染参数（颜色、容差）
//
// 返回:
//   - ecs.EntityID: 小球实体ID，失败时返回 0
//   - error: 创建失败时返回错误
//
// 注意：绘制半径 ball.VisualRadius 与碰撞半径 ball.ColliderRadius 相互独立，
// 默认值 2.0 与 0.5 不一致，保持原样。
func NewBallEntity(
	em *ecs.EntityManager,
	engine physics.Engine,
	mapper utils.CoordinateMapper,
	ball config.BallConfig,
	render config.RenderConfig,
) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if engine == nil {
		return 0, fmt.Errorf("physics engine cannot be nil")
	}

	spawn := mapper.ScreenToWorld(ball.Spawn.Screen())
	mass := ball.Density * math.Pi * ball.ColliderRadius * ball.ColliderRadius

	body, err := engine.InsertBody(physics.BodyDef{
		Position:      spawn,
		Mass:          mass,
		LinearDamping: ball.LinearDamping,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert ball body: %w", err)
	}

	if err := engine.AttachCircle(body, physics.CircleDef{
		Radius:      ball.ColliderRadius,
		Restitution: ball.Restitution,
		Friction:    ball.Friction,
	}); err != nil {
		return 0, fmt.Errorf("failed to attach ball collider: %w", err)
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.BallComponent{
		Body:        body,
		WorldRadius: ball.VisualRadius,
	})
	ecs.AddComponent(em, entityID, &components.CircleSpriteComponent{
		Color:     render.BallColor.Color(),
		Tolerance: render.Tolerance,
	})

	log.Printf("[Entities] Ball %d created: body=%d spawn=(%.2f, %.2f) mass=%.4f",
		entityID, body, spawn.X, spawn.Y, mass)

	return entityID, nil
}

// NewFloor 添加静态地面
//
// 地面是一条横跨整个视口的线段，位于屏幕坐标 floor.ScreenY 处。
// 地面不是实体，不参与绘制。
func NewFloor(engine physics.Engine, mapper utils.CoordinateMapper, floor config.FloorConfig, viewportWidth float64) error {
	y := mapper.ScreenToWorld(types.ScreenVector{Y: floor.ScreenY}).Y
	// 左右各延伸一个视口宽度，防止小球从边缘滑出
	width := mapper.ScreenLengthToWorld(viewportWidth)

	if err := engine.AddStaticSegment(physics.SegmentDef{
		A:           types.WorldVector{X: -width, Y: y},
		B:           types.WorldVector{X: 2 * width, Y: y},
		Radius:      floor.Thickness,
		Restitution: floor.Restitution,
		Friction:    1,
	}); err != nil {
		return fmt.Errorf("failed to add floor: %w", err)
	}

	log.Printf("[Entities] Floor added at world y=%.2f", y)
	return nil
}
