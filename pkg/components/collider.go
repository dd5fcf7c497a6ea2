package components

import "github.com/decker502/hummingbird/pkg/types"

// ColliderComponent 定义实体的球形碰撞体
// 花朵拥有两个碰撞体子节点：花蜜触发器和花瓣实体碰撞体
type ColliderComponent struct {
	Kind   types.ColliderKind // 触发器或实体碰撞体
	Radius float64            // 碰撞球半径（世界单位）
	Active bool               // 是否参与碰撞检测，花蜜耗尽时关闭
}
