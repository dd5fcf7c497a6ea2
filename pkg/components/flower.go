package components

import (
	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/decker502/hummingbird/pkg/types"
)

// FlowerComponent 标识实体为花朵，并存储花蜜状态
//
// 花蜜量在首次 ResetFlower 之前未定义（State == FlowerUninitialized），
// 此时 FlowerSystem 拒绝取食。
type FlowerComponent struct {
	// NectarAmount 剩余花蜜量，满值为 1.0，下限为 0
	NectarAmount float64
	// State 当前花蜜状态
	State types.FlowerState

	// NectarCollider 花蜜触发器子节点（鸟喙进入此区域即可取食）
	NectarCollider ecs.EntityID
	// PetalCollider 花瓣实体碰撞体子节点
	PetalCollider ecs.EntityID
}

// HasNectar 是否还有剩余花蜜
func (f *FlowerComponent) HasNectar() bool {
	return f.NectarAmount > 0
}
