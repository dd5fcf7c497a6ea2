// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// NodeKind 场景节点类别
// 替代按字符串标签判断节点类型，避免拼写错误
type NodeKind int

const (
	// NodeContainer 普通容器节点（仅用于组织层级）
	NodeContainer NodeKind = iota
	// NodePlantGroup 花株节点，包含多朵花，重置时整体随机旋转
	NodePlantGroup
)

// String 返回节点类别的字符串表示
func (k NodeKind) String() string {
	switch k {
	case NodeContainer:
		return "Container"
	case NodePlantGroup:
		return "PlantGroup"
	default:
		return "Unknown"
	}
}
