package components

import "github.com/decker502/hummingbird/pkg/types"

// NodeComponent 标识实体为场景树节点
type NodeComponent struct {
	// Name 节点名称（如 "FlowerNectarCollider"），用于按名查找子节点
	Name string
	// Kind 节点类别（容器 / 花株）
	Kind types.NodeKind
}
