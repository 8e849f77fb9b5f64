package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/superball/pkg/types"
)

// ErrNoTarget 画布没有绘制目标
var ErrNoTarget = errors.New("canvas has no target image")

var (
	whiteImageOnce sync.Once
	whiteSubImage  *ebiten.Image
)

// whiteSource 返回 1x1 的白色纹理，DrawTriangles 的顶点颜色直接决定填充色
func whiteSource() *ebiten.Image {
	whiteImageOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// EbitenCanvas 以 *ebiten.Image 为绘制目标的 Canvas
//
// Ebitengine 在 Draw 返回后自动提交帧，Finish 只做状态检查。
type EbitenCanvas struct {
	dst      *ebiten.Image
	vertices []ebiten.Vertex // 复用的顶点缓冲
	options  ebiten.DrawTrianglesOptions
}

// NewEbitenCanvas 创建 EbitenCanvas
func NewEbitenCanvas(dst *ebiten.Image) *EbitenCanvas {
	return &EbitenCanvas{
		dst:     dst,
		options: ebiten.DrawTrianglesOptions{AntiAlias: true},
	}
}

// Reset 切换到新一帧的绘制目标
func (c *EbitenCanvas) Reset(dst *ebiten.Image) {
	c.dst = dst
}

// Fill 用背景色清空画布
func (c *EbitenCanvas) Fill(clr color.Color) {
	if c.dst == nil {
		return
	}
	c.dst.Fill(clr)
}

// DrawMesh 在 at 位置绘制网格
func (c *EbitenCanvas) DrawMesh(m *Mesh, at types.ScreenVector) error {
	if m == nil || m.TriangleCount() == 0 {
		return fmt.Errorf("draw mesh: %w", ErrEmptyMesh)
	}
	if c.dst == nil {
		return fmt.Errorf("draw mesh: %w", ErrNoTarget)
	}

	c.vertices = c.vertices[:0]
	for _, v := range m.Vertices {
		c.vertices = append(c.vertices, ebiten.Vertex{
			DstX:   v.X + float32(at.X),
			DstY:   v.Y + float32(at.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: v.R,
			ColorG: v.G,
			ColorB: v.B,
			ColorA: v.A,
		})
	}
	c.dst.DrawTriangles(c.vertices, m.Indices, whiteSource(), &c.options)
	return nil
}

// Finish 提交本帧
func (c *EbitenCanvas) Finish() error {
	if c.dst == nil {
		return fmt.Errorf("finish frame: %w", ErrNoTarget)
	}
	return nil
}
