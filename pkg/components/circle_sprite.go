package components

import "image/color"

// CircleSpriteComponent 以填充圆绘制实体
type CircleSpriteComponent struct {
	Color     color.Color // 填充颜色
	Tolerance float64     // 多边形近似圆的最大偏差（像素）
}
