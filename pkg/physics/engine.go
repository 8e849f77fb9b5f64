// Package physics 封装外部刚体物理引擎
//
// 上层代码（实体工厂、物理系统、渲染系统）只依赖 Engine 接口和本包的
// 值类型，不接触具体引擎的内部类型，便于替换后端。
package physics

import (
	"errors"

	"github.com/gonewx/superball/pkg/types"
)

// ErrUnknownBody 句柄不属于当前引擎的刚体集合
var ErrUnknownBody = errors.New("unknown body handle")

// BodyHandle 刚体句柄
//
// 句柄只是刚体集合中的索引，不拥有刚体的生命周期。0 为无效句柄。
type BodyHandle uint32

// InvalidBody 无效句柄
const InvalidBody BodyHandle = 0

// BodyDef 动态刚体创建参数
type BodyDef struct {
	Position      types.WorldVector // 初始位置（世界坐标）
	Mass          float64           // 质量，必须为正
	Moment        float64           // 转动惯量，<=0 时按实心圆估算
	LinearDamping float64           // 线性阻尼系数，v *= 1/(1 + dt*damping)
}

// CircleDef 圆形碰撞体参数
type CircleDef struct {
	Radius      float64
	Restitution float64
	Friction    float64
}

// SegmentDef 静态线段碰撞体参数
type SegmentDef struct {
	A, B        types.WorldVector
	Radius      float64 // 线段厚度（半径）
	Restitution float64
	Friction    float64
}

// IntegrationParameters 单步积分参数
//
// Dt 每帧由物理系统根据实际经过时间覆盖，其余字段初始化后不变。
type IntegrationParameters struct {
	Gravity    types.WorldVector
	Dt         float64
	Iterations int
}

// Engine 刚体物理引擎能力接口
//
// 实现必须是确定性的：相同的状态、参数和 Dt 产生相同的结果。
type Engine interface {
	// InsertBody 插入动态刚体，返回句柄
	InsertBody(def BodyDef) (BodyHandle, error)
	// AttachCircle 为刚体挂载圆形碰撞体
	AttachCircle(h BodyHandle, def CircleDef) error
	// AddStaticSegment 添加静态线段（如地面）
	AddStaticSegment(def SegmentDef) error
	// Step 推进一个时间步：力积分、宽/窄相碰撞、约束求解、位置更新
	Step(params *IntegrationParameters)
	// Translation 返回刚体当前位置
	Translation(h BodyHandle) (types.WorldVector, error)
	// Velocity 返回刚体当前线速度
	Velocity(h BodyHandle) (types.WorldVector, error)
	// BodyCount 动态刚体数量
	BodyCount() int
	// ColliderCount 碰撞体数量（含静态碰撞体）
	ColliderCount() int
}
