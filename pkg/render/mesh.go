// Package render 提供与具体图形后端无关的绘制原语
//
// 上层系统构建 Mesh 并提交给 Canvas，Canvas 的实现负责与 Ebitengine
// 等外部渲染引擎交互。
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/superball/pkg/types"
)

// MaxCircleSegments 单个圆的最大分段数
//
// 三角扇的顶点数为分段数 + 1，必须能用 uint16 索引。
const MaxCircleSegments = 4096

var (
	// ErrInvalidRadius 半径非正数或非有限值
	ErrInvalidRadius = errors.New("circle radius must be a positive finite number")
	// ErrInvalidTolerance 容差非正数或非有限值
	ErrInvalidTolerance = errors.New("tessellation tolerance must be a positive finite number")
	// ErrEmptyMesh 网格没有任何三角形
	ErrEmptyMesh = errors.New("mesh has no triangles")
)

// Vertex 网格顶点，坐标相对于绘制位置（像素），颜色为非预乘 alpha
type Vertex struct {
	X, Y       float32
	R, G, B, A float32
}

// Mesh 三角形网格
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

// TriangleCount 返回三角形数量
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// CircleSegments 计算满足容差的最少分段数
//
// 弦与圆弧的最大偏差 d = r * (1 - cos(θ/2))，令 d ≤ tolerance 得
// n = ceil(π / acos(1 - tolerance/r))，结果限制在 [3, MaxCircleSegments]。
func CircleSegments(radius, tolerance float64) int {
	if tolerance >= radius {
		return 3
	}
	n := int(math.Ceil(math.Pi / math.Acos(1-tolerance/radius)))
	return max(3, min(n, MaxCircleSegments))
}

// NewCircleMesh 构建填充圆网格（三角扇）
//
// 参数:
//   - center: 圆心，相对于绘制位置
//   - radius: 半径（像素）
//   - tolerance: 多边形近似的最大偏差（像素）
//   - clr: 填充颜色
//
// 返回:
//   - *Mesh: 顶点 0 为圆心，其余为圆周上的点
//   - error: 参数非法时返回 ErrInvalidRadius 或 ErrInvalidTolerance
func NewCircleMesh(center types.ScreenVector, radius, tolerance float64, clr color.Color) (*Mesh, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	if !(tolerance > 0) || math.IsInf(tolerance, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTolerance, tolerance)
	}

	segments := CircleSegments(radius, tolerance)
	r, g, b, a := straightRGBA(clr)

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, segments+1),
		Indices:  make([]uint16, 0, segments*3),
	}
	mesh.Vertices = append(mesh.Vertices, Vertex{
		X: float32(center.X), Y: float32(center.Y),
		R: r, G: g, B: b, A: a,
	})
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		mesh.Vertices = append(mesh.Vertices, Vertex{
			X: float32(center.X + radius*math.Cos(theta)),
			Y: float32(center.Y + radius*math.Sin(theta)),
			R: r, G: g, B: b, A: a,
		})
	}
	for i := 0; i < segments; i++ {
		next := (i+1)%segments + 1
		mesh.Indices = append(mesh.Indices, 0, uint16(i+1), uint16(next))
	}

	return mesh, nil
}

// straightRGBA 将 color.Color（预乘 alpha）转换为非预乘的 0~1 分量
func straightRGBA(clr color.Color) (r, g, b, a float32) {
	if clr == nil {
		return 0, 0, 0, 0
	}
	cr, cg, cb, ca := clr.RGBA()
	if ca == 0 {
		return 0, 0, 0, 0
	}
	alpha := float32(ca)
	return float32(cr) / alpha, float32(cg) / alpha, float32(cb) / alpha, alpha / 0xffff
}
