package render

import (
	"image/color"

	"github.com/gonewx/superball/pkg/types"
)

// DrawCall 一次 DrawMesh 调用
type DrawCall struct {
	Mesh *Mesh
	At   types.ScreenVector
}

// RecordingCanvas 记录绘制命令而不真正绘制
//
// 用于无窗口运行（simulate 命令）和测试。DrawErr/FinishErr 非空时
// 对应调用返回该错误，用于模拟渲染引擎失败。
type RecordingCanvas struct {
	Fills     []color.Color
	Draws     []DrawCall
	Frames    int
	DrawErr   error
	FinishErr error
}

// Fill 记录背景色
func (c *RecordingCanvas) Fill(clr color.Color) {
	c.Fills = append(c.Fills, clr)
}

// DrawMesh 记录绘制命令
func (c *RecordingCanvas) DrawMesh(m *Mesh, at types.ScreenVector) error {
	if c.DrawErr != nil {
		return c.DrawErr
	}
	c.Draws = append(c.Draws, DrawCall{Mesh: m, At: at})
	return nil
}

// Finish 记录帧数
func (c *RecordingCanvas) Finish() error {
	if c.FinishErr != nil {
		return c.FinishErr
	}
	c.Frames++
	return nil
}

// LastDraw 返回最后一次绘制命令
func (c *RecordingCanvas) LastDraw() (DrawCall, bool) {
	if len(c.Draws) == 0 {
		return DrawCall{}, false
	}
	return c.Draws[len(c.Draws)-1], true
}

// Reset 清空记录
func (c *RecordingCanvas) Reset() {
	c.Fills = c.Fills[:0]
	c.Draws = c.Draws[:0]
	c.Frames = 0
}
