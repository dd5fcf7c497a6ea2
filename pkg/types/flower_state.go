package types

// FlowerState 花朵花蜜状态
//
// 状态转换:
//   - Uninitialized -> Full: 首次 ResetFlower
//   - Full -> Empty: Feed 使花蜜 <= 0
//   - Empty -> Full: ResetFlower
type FlowerState int

const (
	// FlowerUninitialized 已创建但从未重置，花蜜量未定义
	FlowerUninitialized FlowerState = iota
	// FlowerFull 有花蜜，碰撞体激活
	FlowerFull
	// FlowerEmpty 花蜜耗尽，碰撞体关闭
	FlowerEmpty
)

// String 返回花朵状态的字符串表示
func (s FlowerState) String() string {
	switch s {
	case FlowerUninitialized:
		return "Uninitialized"
	case FlowerFull:
		return "Full"
	case FlowerEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// FeedMode 取食扣减模式
type FeedMode string

const (
	// FeedModeLegacy 按请求量扣减花蜜，返回值按扣减前的花蜜量截断
	// 超额请求时返回值小于实际扣减量
	FeedModeLegacy FeedMode = "legacy"
	// FeedModeConsistent 按截断后的实际取食量扣减，返回值总是等于扣减量
	FeedModeConsistent FeedMode = "consistent"
)

// IsValid 检查取食模式是否为已知值
func (m FeedMode) IsValid() bool {
	return m == FeedModeLegacy || m == FeedModeConsistent
}

// ColliderKind 碰撞体类别
type ColliderKind int

const (
	// ColliderTrigger 触发器（花蜜区域，可穿过）
	ColliderTrigger ColliderKind = iota
	// ColliderSolid 实体碰撞体（花瓣，不可穿过）
	ColliderSolid
)
