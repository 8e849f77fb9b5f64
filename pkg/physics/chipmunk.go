package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/gonewx/superball/pkg/types"
)

// ChipmunkEngine 基于 Chipmunk2D（jakecoffman/cp）的 Engine 实现
//
// cp.Space 同时承担刚体集合、碰撞体集合、宽相/窄相以及求解器缓存的角色，
// 关节集合在本场景中不需要，因此没有占位对象。
type ChipmunkEngine struct {
	space     *cp.Space
	gravity   cp.Vector // 当前时间步的重力，由刚体的位置积分函数读取
	bodies    map[BodyHandle]*cp.Body
	nextID    uint32
	colliders int
}

var _ Engine = (*ChipmunkEngine)(nil)

// NewChipmunkEngine 创建空的物理世界
func NewChipmunkEngine() *ChipmunkEngine {
	return &ChipmunkEngine{
		space:  cp.NewSpace(),
		bodies: make(map[BodyHandle]*cp.Body),
		nextID: 1, // 0 保留为无效句柄
	}
}

// InsertBody 插入动态刚体
func (e *ChipmunkEngine) InsertBody(def BodyDef) (BodyHandle, error) {
	if def.Mass <= 0 || math.IsNaN(def.Mass) || math.IsInf(def.Mass, 0) {
		return InvalidBody, fmt.Errorf("body mass must be a positive finite number, got %v", def.Mass)
	}
	moment := def.Moment
	if moment <= 0 {
		// 单位半径实心圆的估算值，挂载圆形碰撞体时会按实际半径重新计算
		moment = cp.MomentForCircle(def.Mass, 0, 1, cp.Vector{})
	}

	body := e.space.AddBody(cp.NewBody(def.Mass, moment))
	body.SetPosition(toCP(def.Position))

	// cp 默认先积分位置再积分速度，静止刚体的第一步不会移动。
	// 这里把速度积分挪到位置积分之前：v += g*dt，线性阻尼，然后 x += v*dt。
	// 求解器冲量在碰撞检测之后施加到速度上，下一步生效。
	linearDamping := def.LinearDamping
	body.SetVelocityUpdateFunc(func(*cp.Body, cp.Vector, float64, float64) {})
	body.SetPositionUpdateFunc(func(b *cp.Body, dt float64) {
		cp.BodyUpdateVelocity(b, e.gravity, 1, dt)
		if linearDamping > 0 {
			// 只衰减线速度，角速度不受影响
			b.SetVelocityVector(b.Velocity().Mult(1 / (1 + dt*linearDamping)))
		}
		cp.BodyUpdatePosition(b, dt)
	})

	h := BodyHandle(e.nextID)
	e.nextID++
	e.bodies[h] = body
	return h, nil
}

// AttachCircle 为刚体挂载圆形碰撞体
func (e *ChipmunkEngine) AttachCircle(h BodyHandle, def CircleDef) error {
	body, ok := e.bodies[h]
	if !ok {
		return fmt.Errorf("attach circle to body %d: %w", h, ErrUnknownBody)
	}
	if def.Radius <= 0 {
		return fmt.Errorf("circle radius must be positive, got %v", def.Radius)
	}

	body.SetMoment(cp.MomentForCircle(body.Mass(), 0, def.Radius, cp.Vector{}))

	shape := e.space.AddShape(cp.NewCircle(body, def.Radius, cp.Vector{}))
	shape.SetElasticity(def.Restitution)
	shape.SetFriction(def.Friction)
	e.colliders++
	return nil
}

// AddStaticSegment 添加挂在静态刚体上的线段
func (e *ChipmunkEngine) AddStaticSegment(def SegmentDef) error {
	if def.A == def.B {
		return fmt.Errorf("segment endpoints must differ, got %+v", def.A)
	}

	shape := e.space.AddShape(cp.NewSegment(e.space.StaticBody, toCP(def.A), toCP(def.B), def.Radius))
	shape.SetElasticity(def.Restitution)
	shape.SetFriction(def.Friction)
	e.colliders++
	return nil
}

// Step 推进一个时间步
//
// Dt <= 0 时不做任何事情，保证零时间步不会产生位移。
func (e *ChipmunkEngine) Step(params *IntegrationParameters) {
	if params == nil || params.Dt <= 0 {
		return
	}
	e.gravity = toCP(params.Gravity)
	e.space.SetGravity(e.gravity)
	if params.Iterations > 0 {
		e.space.Iterations = uint(params.Iterations)
	}
	e.space.Step(params.Dt)
}

// Translation 返回刚体当前位置
func (e *ChipmunkEngine) Translation(h BodyHandle) (types.WorldVector, error) {
	body, ok := e.bodies[h]
	if !ok {
		return types.WorldVector{}, fmt.Errorf("translation of body %d: %w", h, ErrUnknownBody)
	}
	return fromCP(body.Position()), nil
}

// Velocity 返回刚体当前线速度
func (e *ChipmunkEngine) Velocity(h BodyHandle) (types.WorldVector, error) {
	body, ok := e.bodies[h]
	if !ok {
		return types.WorldVector{}, fmt.Errorf("velocity of body %d: %w", h, ErrUnknownBody)
	}
	return fromCP(body.Velocity()), nil
}

// BodyCount 动态刚体数量
func (e *ChipmunkEngine) BodyCount() int {
	return len(e.bodies)
}

// ColliderCount 碰撞体数量
func (e *ChipmunkEngine) ColliderCount() int {
	return e.colliders
}

func toCP(v types.WorldVector) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) types.WorldVector {
	return types.WorldVector{X: v.X, Y: v.Y}
}
