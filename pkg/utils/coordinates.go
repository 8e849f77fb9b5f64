// Package utils 提供常用的工具函数
//
// coordinates.go 提供物理世界坐标与屏幕坐标之间的转换。
//
// # 坐标系统概述
//
// 本项目使用以下坐标系统：
//   - **世界坐标**：物理引擎使用，单位为米，Y 轴向上
//   - **屏幕坐标**：渲染使用，单位为像素，原点在窗口左上角，Y 轴向下
//
// # 核心转换公式
//
//	screen.X = world.X * Scale
//	screen.Y = ViewportHeight - world.Y * Scale
//
// 长度（如半径）没有原点，只需乘以 Scale，不做 Y 轴翻转：
//
//	screenLength = worldLength * Scale
//
// # 错误处理
//
// 转换函数本身是纯函数，不会失败。只有 NewCoordinateMapper 在参数非法时返回
// ErrInvalidScale 或 ErrInvalidViewport，调用者可使用 errors.Is 检查：
//
//	mapper, err := utils.NewCoordinateMapper(cfg.Scale, cfg.Height)
//	if errors.Is(err, utils.ErrInvalidScale) {
//	    // 处理缩放系数非法
//	}
package utils

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonewx/superball/pkg/types"
)

const (
	// DefaultScale 世界单位到像素的缩放系数（1 米 = 10 像素）
	DefaultScale = 10.0
	// DefaultViewportHeight 视口高度（像素），用于 Y 轴翻转
	DefaultViewportHeight = 800.0
)

var (
	// ErrInvalidScale 缩放系数非正数或非有限值
	ErrInvalidScale = errors.New("scale must be a positive finite number")
	// ErrInvalidViewport 视口高度非有限值
	ErrInvalidViewport = errors.New("viewport height must be a finite number")
)

// CoordinateMapper 世界坐标与屏幕坐标的线性映射
//
// 零值不可用（Scale 为 0 会导致 ScreenToWorld 除零），
// 请使用 NewCoordinateMapper 或 DefaultCoordinateMapper 创建。
type CoordinateMapper struct {
	Scale          float64 // 世界单位 → 像素
	ViewportHeight float64 // 视口高度（像素）
}

// NewCoordinateMapper 创建坐标映射器
//
// 参数:
//   - scale: 世界单位到像素的缩放系数，必须为正
//   - viewportHeight: 视口高度（像素）
//
// 返回:
//   - CoordinateMapper: 映射器
//   - error: 参数非法时返回 ErrInvalidScale 或 ErrInvalidViewport
func NewCoordinateMapper(scale, viewportHeight float64) (CoordinateMapper, error) {
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return CoordinateMapper{}, fmt.Errorf("%w: got %v", ErrInvalidScale, scale)
	}
	if math.IsInf(viewportHeight, 0) || math.IsNaN(viewportHeight) {
		return CoordinateMapper{}, fmt.Errorf("%w: got %v", ErrInvalidViewport, viewportHeight)
	}
	return CoordinateMapper{Scale: scale, ViewportHeight: viewportHeight}, nil
}

// DefaultCoordinateMapper 返回默认映射器（Scale=10, ViewportHeight=800）
func DefaultCoordinateMapper() CoordinateMapper {
	return CoordinateMapper{Scale: DefaultScale, ViewportHeight: DefaultViewportHeight}
}

// WorldToScreen 将世界坐标转换为屏幕坐标
//
// 示例:
//
//	WorldToScreen({0, 0})   = {0, 800}
//	WorldToScreen({40, 80}) = {400, 0}
func (m CoordinateMapper) WorldToScreen(w types.WorldVector) types.ScreenVector {
	return types.ScreenVector{
		X: w.X * m.Scale,
		Y: m.ViewportHeight - w.Y*m.Scale,
	}
}

// ScreenToWorld 将屏幕坐标转换为世界坐标（WorldToScreen 的逆变换）
//
// 示例:
//
//	ScreenToWorld({400, 400}) = {40, 40}
func (m CoordinateMapper) ScreenToWorld(s types.ScreenVector) types.WorldVector {
	return types.WorldVector{
		X: s.X / m.Scale,
		Y: (m.ViewportHeight - s.Y) / m.Scale,
	}
}

// WorldLengthToScreen 将世界长度转换为屏幕长度（用于半径等，不翻转）
func (m CoordinateMapper) WorldLengthToScreen(length float64) float64 {
	return length * m.Scale
}

// ScreenLengthToWorld 将屏幕长度转换为世界长度
func (m CoordinateMapper) ScreenLengthToWorld(length float64) float64 {
	return length / m.Scale
}
