// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// WorldVector 物理世界坐标系中的二维向量
//
// 单位为物理单位（米），X 向右为正，Y 向上为正。
type WorldVector struct {
	X float64
	Y float64
}

// ScreenVector 屏幕坐标系中的二维向量
//
// 单位为像素，原点位于窗口左上角，X 向右为正，Y 向下为正。
type ScreenVector struct {
	X float64
	Y float64
}
