package render

import (
	"image/color"

	"github.com/gonewx/superball/pkg/types"
)

// Canvas 单帧绘制目标
//
// 每帧的调用顺序为 Fill → DrawMesh* → Finish。
type Canvas interface {
	// Fill 用背景色清空画布
	Fill(clr color.Color)
	// DrawMesh 在 at 位置绘制网格
	DrawMesh(m *Mesh, at types.ScreenVector) error
	// Finish 提交本帧
	Finish() error
}

var (
	_ Canvas = (*EbitenCanvas)(nil)
	_ Canvas = (*RecordingCanvas)(nil)
)
