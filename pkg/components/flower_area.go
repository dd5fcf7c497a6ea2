package components

import "github.com/decker502/hummingbird/pkg/ecs"

// FlowerAreaComponent 花区索引
//
// 由 FlowerAreaSystem.ScanArea 一次性填充，之后只读：
// 重置只修改已有花朵的状态，不会重建索引。
type FlowerAreaComponent struct {
	// Plants 花株节点（扫描顺序）
	Plants []ecs.EntityID
	// Flowers 花朵实体（扫描顺序）
	Flowers []ecs.EntityID
	// NectarIndex 花蜜触发器 -> 所属花朵
	NectarIndex map[ecs.EntityID]ecs.EntityID
	// Scanned 是否已完成扫描
	Scanned bool
}
