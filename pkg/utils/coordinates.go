// Package utils 提供通用工具函数
//
// coordinates.go 提供花区俯视图的坐标转换。
//
// # 坐标系统
//
//   - **世界坐标**：场景图中的三维坐标，Y 轴向上，花区中心为原点
//   - **屏幕坐标**：相对于窗口左上角，X 向右，Y 向下
//
// 俯视图把世界 X/Z 平面映射到屏幕，忽略高度：
//
//	screenX = width/2  + world.X * scale
//	screenY = height/2 + world.Z * scale
package utils

import "github.com/go-gl/mathgl/mgl64"

// TopDownView 俯视图投影参数
type TopDownView struct {
	Width, Height float64
	// Scale 每个世界单位对应的像素数
	Scale float64
}

// NewTopDownView 创建一个刚好容纳指定直径区域的俯视图
//
// 参数:
//   - width, height: 屏幕尺寸
//   - diameter: 需要完整显示的区域直径（世界单位）
//   - margin: 边距倍数，1 表示区域贴边
func NewTopDownView(width, height, diameter, margin float64) TopDownView {
	scale := 1.0
	if diameter > 0 && margin > 0 {
		scale = min(width, height) / (diameter * margin)
	}
	return TopDownView{Width: width, Height: height, Scale: scale}
}

// WorldToScreen 世界坐标 → 屏幕坐标
func (v TopDownView) WorldToScreen(p mgl64.Vec3) (screenX, screenY float64) {
	return v.Width/2 + p.X()*v.Scale, v.Height/2 + p.Z()*v.Scale
}

// ScreenToWorld 屏幕坐标 → 世界坐标，高度取 height
func (v TopDownView) ScreenToWorld(screenX, screenY, height float64) mgl64.Vec3 {
	if v.Scale == 0 {
		return mgl64.Vec3{0, height, 0}
	}
	return mgl64.Vec3{(screenX - v.Width/2) / v.Scale, height, (screenY - v.Height/2) / v.Scale}
}
