package components

import "github.com/gonewx/superball/pkg/physics"

// BallComponent 被追踪的小球
//
// Body 是物理引擎刚体集合中的非拥有引用，刚体生命周期由引擎管理。
// WorldRadius 只用于绘制，与碰撞体半径相互独立。
type BallComponent struct {
	Body        physics.BodyHandle // 刚体句柄
	WorldRadius float64            // 绘制半径（世界单位）
}
