package physics

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/gonewx/superball/pkg/types"
)

func newBall(t *testing.T, e *ChipmunkEngine, pos types.WorldVector, damping float64) BodyHandle {
	t.Helper()
	h, err := e.InsertBody(BodyDef{Position: pos, Mass: 1, LinearDamping: damping})
	if err != nil {
		t.Fatalf("InsertBody: %v", err)
	}
	if err := e.AttachCircle(h, CircleDef{Radius: 0.5, Restitution: 0.4}); err != nil {
		t.Fatalf("AttachCircle: %v", err)
	}
	return h
}

func TestChipmunkEngine_InsertBody(t *testing.T) {
	g := NewWithT(t)
	e := NewChipmunkEngine()

	h := newBall(t, e, types.WorldVector{X: 40, Y: 40}, 0.6)

	g.Expect(h).NotTo(Equal(InvalidBody))
	g.Expect(e.BodyCount()).To(Equal(1))
	g.Expect(e.ColliderCount()).To(Equal(1))

	pos, err := e.Translation(h)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pos).To(Equal(types.WorldVector{X: 40, Y: 40}))

	vel, err := e.Velocity(h)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vel).To(Equal(types.WorldVector{}))
}

func TestChipmunkEngine_UniqueHandles(t *testing.T) {
	g := NewWithT(t)
	e := NewChipmunkEngine()

	a := newBall(t, e, types.WorldVector{}, 0)
	b := newBall(t, e, types.WorldVector{X: 5}, 0)

	g.Expect(a).NotTo(Equal(b))
	g.Expect(e.BodyCount()).To(Equal(2))
}

func TestChipmunkEngine_InvalidDefs(t *testing.T) {
	g := NewWithT(t)
	e := NewChipmunkEngine()

	_, err := e.InsertBody(BodyDef{Mass: 0})
	g.Expect(err).To(HaveOccurred())

	h, err := e.InsertBody(BodyDef{Mass: 1})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(e.AttachCircle(h, CircleDef{Radius: 0})).To(HaveOccurred())
	g.Expect(e.AddStaticSegment(SegmentDef{})).To(HaveOccurred())
}

func TestChipmunkEngine_UnknownBody(t *testing.T) {
	g := NewWithT(t)
	e := NewChipmunkEngine()

	_, err := e.Translation(42)
	g.Expect(err).To(MatchError(ErrUnknownBody))

	_, err = e.Velocity(InvalidBody)
	g.Expect(err).To(MatchError(ErrUnknownBody))

	g.Expect(e.AttachCircle(7, CircleDef{Radius: 1})).To(MatchError(ErrUnknownBody))
}

func TestChipmunkEngine_ZeroStepDoesNotMove(t *testing.T) {
	g := NewWithT(t)
	e := NewChipmunkEngine()
	h := newBall(t, e, types.WorldVector{X: 40, Y: 40}, 0.6)

	params := &IntegrationParameters{Gravity: types.WorldVector{Y: -10}, Dt: 0, Iterations: 10}
	for i := 0; i < 5; i++ {
		e.Step(params)
	}

	pos, _ := e.Translation(h)
	vel, _ := e.Velocity(h)
	g.Expect(pos).To(Equal(types.WorldVector{X: 40, Y: 40}))
	g.Expect(vel).To(Equal(types.WorldVector{}))

	e.Step(nil)
	pos, _ = e.Translation(h)
	g.Expect(pos).To(Equal(types.WorldVector{X: 40, Y: 40}))
}

func TestChipmunkEngine_Falls(t *testing.T) {
	g := NewWithT(t)
	e := NewChipmunkEngine()
	h := newBall(t, e, types.WorldVector{X: 40, Y: 40}, 0.6)
	params := &IntegrationParameters{Gravity: types.WorldVector{Y: -10}, Dt: 1.0 / 60, Iterations: 10}

	prev, _ := e.Translation(h)
	for i := 0; i < 120; i++ {
		e.Step(params)
		pos, _ := e.Translation(h)
		g.Expect(pos.Y).To(BeNumerically("<", prev.Y), "step %d", i)
		g.Expect(pos.X).To(Equal(40.0))
		prev = pos
	}

	vel, _ := e.Velocity(h)
	g.Expect(vel.Y).To(BeNumerically("<", 0))
}

// 第一步就先施加重力再移动：v1 = g*dt/(1+dt*c)，y1 = y0 + v1*dt
func TestChipmunkEngine_FirstStepMoves(t *testing.T) {
	g := NewWithT(t)
	e := NewChipmunkEngine()
	h := newBall(t, e, types.WorldVector{X: 40, Y: 40}, 0.6)
	dt := 1.0 / 60
	e.Step(&IntegrationParameters{Gravity: types.WorldVector{Y: -10}, Dt: dt, Iterations: 10})

	wantV := -10 * dt / (1 + dt*0.6)
	vel, _ := e.Velocity(h)
	pos, _ := e.Translation(h)
	g.Expect(vel.Y).To(BeNumerically("~", wantV, 1e-12))
	g.Expect(pos.Y).To(BeNumerically("~", 40+wantV*dt, 1e-12))
	g.Expect(pos.Y).To(BeNumerically("<", 40.0))
}

// 线性阻尼不影响角速度
func TestChipmunkEngine_LinearDampingKeepsAngularVelocity(t *testing.T) {
	g := NewWithT(t)
	e := NewChipmunkEngine()
	h := newBall(t, e, types.WorldVector{X: 40, Y: 40}, 0.6)
	e.bodies[h].SetAngularVelocity(2)

	params := &IntegrationParameters{Gravity: types.WorldVector{Y: -10}, Dt: 1.0 / 60, Iterations: 10}
	for i := 0; i < 30; i++ {
		e.Step(params)
	}

	g.Expect(e.bodies[h].AngularVelocity()).To(BeNumerically("~", 2, 1e-12))
	vel, _ := e.Velocity(h)
	g.Expect(vel.Y).To(BeNumerically(">", -10*30.0/60))
}

// 阻尼让速度低于无阻尼自由落体
func TestChipmunkEngine_LinearDamping(t *testing.T) {
	g := NewWithT(t)
	params := &IntegrationParameters{Gravity: types.WorldVector{Y: -10}, Dt: 1.0 / 60, Iterations: 10}

	free := NewChipmunkEngine()
	fh := newBall(t, free, types.WorldVector{Y: 100}, 0)
	damped := NewChipmunkEngine()
	dh := newBall(t, damped, types.WorldVector{Y: 100}, 0.6)

	for i := 0; i < 60; i++ {
		free.Step(params)
		damped.Step(params)
	}

	fv, _ := free.Velocity(fh)
	dv, _ := damped.Velocity(dh)
	g.Expect(fv.Y).To(BeNumerically("~", -10, 1e-6))
	g.Expect(dv.Y).To(BeNumerically(">", fv.Y))
	g.Expect(dv.Y).To(BeNumerically("<", 0))
}

func TestChipmunkEngine_Deterministic(t *testing.T) {
	g := NewWithT(t)
	run := func() types.WorldVector {
		e := NewChipmunkEngine()
		h := newBall(t, e, types.WorldVector{X: 40, Y: 40}, 0.6)
		g.Expect(e.AddStaticSegment(SegmentDef{
			A: types.WorldVector{X: -100, Y: 2}, B: types.WorldVector{X: 100, Y: 2},
			Radius: 0.5, Restitution: 1,
		})).To(Succeed())
		params := &IntegrationParameters{Gravity: types.WorldVector{Y: -10}, Iterations: 10}
		for i := 0; i < 600; i++ {
			params.Dt = 1.0 / float64(50+i%20)
			e.Step(params)
		}
		pos, _ := e.Translation(h)
		return pos
	}

	g.Expect(run()).To(Equal(run()))
}

// 有地面时小球弹跳，弹起高度逐次衰减并最终静止
func TestChipmunkEngine_BounceAttenuates(t *testing.T) {
	g := NewWithT(t)
	e := NewChipmunkEngine()
	h := newBall(t, e, types.WorldVector{X: 40, Y: 40}, 0.6)
	g.Expect(e.AddStaticSegment(SegmentDef{
		A: types.WorldVector{X: -100, Y: 2}, B: types.WorldVector{X: 100, Y: 2},
		Radius: 0.5, Restitution: 1,
	})).To(Succeed())
	g.Expect(e.ColliderCount()).To(Equal(2))

	const restLevel = 3.0 // 地面 + 厚度 + 小球半径
	params := &IntegrationParameters{Gravity: types.WorldVector{Y: -10}, Dt: 1.0 / 60, Iterations: 10}

	ys := make([]float64, 0, 1200)
	for i := 0; i < 1200; i++ {
		e.Step(params)
		pos, _ := e.Translation(h)
		g.Expect(pos.Y).To(BeNumerically(">", 2.0), "ball fell through the floor at step %d", i)
		ys = append(ys, pos.Y)
	}

	var peaks []float64
	for i := 1; i < len(ys)-1; i++ {
		if ys[i] > ys[i-1] && ys[i] >= ys[i+1] && ys[i]-restLevel > 0.01 {
			peaks = append(peaks, ys[i])
		}
	}
	g.Expect(len(peaks)).To(BeNumerically(">=", 2))
	g.Expect(peaks[0]).To(BeNumerically("<", 40))
	for i := 1; i < len(peaks); i++ {
		g.Expect(peaks[i]).To(BeNumerically("<", peaks[i-1]))
	}

	for _, y := range ys[len(ys)-300:] {
		g.Expect(y).To(BeNumerically("~", restLevel, 0.5))
	}
}
