package components

import (
	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// TransformComponent 场景树节点的空间变换和层级关系
//
// 坐标系与宿主引擎一致：Y 轴向上，角度单位为度。
// 世界变换由 scene.Graph 沿父链组合得到，本组件只存局部值。
type TransformComponent struct {
	// Parent 父节点，ecs.InvalidEntity 表示根节点
	Parent ecs.EntityID
	// Children 子节点（保持添加顺序，扫描按此顺序进行）
	Children []ecs.EntityID

	// LocalPosition 相对父节点的位置
	LocalPosition mgl64.Vec3
	// LocalRotation 相对父节点的欧拉角（度），X/Y/Z 分量
	// 组合顺序为先 Z、再 X、最后 Y
	LocalRotation mgl64.Vec3
}
