package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// MaterialComponent 实体的材质颜色
//
// 渲染时把 ColorScale 直接赋给 DrawImageOptions.ColorScale，
// 对白色底图着色即可得到 BaseColor。
type MaterialComponent struct {
	// BaseColor 当前基础颜色
	BaseColor color.RGBA
	// ColorScale 与 BaseColor 对应的颜色缩放
	ColorScale ebiten.ColorScale
}

// SetBaseColor 设置基础颜色并同步颜色缩放
func (m *MaterialComponent) SetBaseColor(c color.RGBA) {
	m.BaseColor = c
	m.ColorScale.Reset()
	m.ColorScale.ScaleWithColor(c)
}
