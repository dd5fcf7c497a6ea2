package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/hummingbird/pkg/components"
	"github.com/decker502/hummingbird/pkg/config"
	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/decker502/hummingbird/pkg/scene"
	"github.com/decker502/hummingbird/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNotFlower 实体没有 FlowerComponent
	ErrNotFlower = errors.New("entity is not a flower")
	// ErrFlowerUninitialized 花朵从未重置，花蜜量未定义
	ErrFlowerUninitialized = errors.New("flower not initialized, call ResetFlower first")
)

// FlowerSystem 管理花朵的花蜜取食与重置
//
// 花蜜耗尽时关闭花蜜触发器和花瓣碰撞体，并把材质切换为空花颜色；
// 重置时恢复满花蜜、重新激活碰撞体并切换为满花颜色。
// 部分取食不会改变颜色。
type FlowerSystem struct {
	entityManager *ecs.EntityManager
	graph         *scene.Graph
	config        config.FlowerConfig

	// Verbose 输出每次取食的调试日志
	Verbose bool
}

// NewFlowerSystem 创建花朵系统
//
// 参数:
//   - em: 实体管理器
//   - graph: 场景树，用于计算花蜜触发器的世界变换
//   - cfg: 花朵配置（满花蜜量、取食模式、颜色）
func NewFlowerSystem(em *ecs.EntityManager, graph *scene.Graph, cfg config.FlowerConfig) *FlowerSystem {
	return &FlowerSystem{
		entityManager: em,
		graph:         graph,
		config:        cfg,
	}
}

// FeedMode 返回当前取食模式
func (s *FlowerSystem) FeedMode() types.FeedMode {
	return s.config.FeedMode
}

func (s *FlowerSystem) flower(id ecs.EntityID) (*components.FlowerComponent, error) {
	flower, ok := ecs.GetComponent[*components.FlowerComponent](s.entityManager, id)
	if !ok {
		return nil, fmt.Errorf("flower %d: %w", id, ErrNotFlower)
	}
	return flower, nil
}

// Feed 尝试从花朵中取走花蜜
//
// 返回值为截断到 [0, 当前花蜜量] 的请求量。
// legacy 模式按原始请求量扣减（超额请求时扣减量大于返回值，花蜜量先变负再归零）；
// consistent 模式按返回值扣减。负的请求量不做校验。
//
// 参数:
//   - id: 花朵实体
//   - amount: 请求取食量
//
// 返回:
//   - float64: 本次取到的花蜜量
//   - error: ErrNotFlower 或 ErrFlowerUninitialized
func (s *FlowerSystem) Feed(id ecs.EntityID, amount float64) (float64, error) {
	flower, err := s.flower(id)
	if err != nil {
		return 0, err
	}
	if flower.State == types.FlowerUninitialized {
		return 0, fmt.Errorf("feed flower %d: %w", id, ErrFlowerUninitialized)
	}

	taken := clamp(amount, 0, flower.NectarAmount)

	if s.config.FeedMode == types.FeedModeConsistent {
		flower.NectarAmount -= taken
	} else {
		flower.NectarAmount -= amount
	}

	if flower.NectarAmount <= 0 {
		flower.NectarAmount = 0
		if flower.State != types.FlowerEmpty {
			s.setEmpty(id, flower)
		}
	}

	if s.Verbose {
		log.Printf("[FlowerSystem] Flower %d fed: requested=%.3f taken=%.3f remaining=%.3f",
			id, amount, taken, flower.NectarAmount)
	}
	return taken, nil
}

// ResetFlower 重置花朵：花蜜回满、碰撞体激活、显示满花颜色
// 可重复调用，结果相同
func (s *FlowerSystem) ResetFlower(id ecs.EntityID) error {
	flower, err := s.flower(id)
	if err != nil {
		return err
	}

	flower.NectarAmount = s.config.FullNectar
	flower.State = types.FlowerFull
	s.setCollidersActive(flower, true)
	s.setColor(id, s.config.FullColor)
	return nil
}

// HasNectar 花朵是否还有花蜜，非花朵实体返回 false
func (s *FlowerSystem) HasNectar(id ecs.EntityID) bool {
	flower, err := s.flower(id)
	if err != nil {
		return false
	}
	return flower.HasNectar()
}

// NectarAmount 返回花朵剩余花蜜量
func (s *FlowerSystem) NectarAmount(id ecs.EntityID) (float64, error) {
	flower, err := s.flower(id)
	if err != nil {
		return 0, err
	}
	return flower.NectarAmount, nil
}

// UpVector 花朵朝外的方向（花蜜触发器的世界 Y 轴）
func (s *FlowerSystem) UpVector(id ecs.EntityID) (mgl64.Vec3, error) {
	flower, err := s.flower(id)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return s.graph.Up(flower.NectarCollider)
}

// CenterPosition 花蜜触发器中心的世界位置
func (s *FlowerSystem) CenterPosition(id ecs.EntityID) (mgl64.Vec3, error) {
	flower, err := s.flower(id)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return s.graph.WorldPosition(flower.NectarCollider)
}

// setEmpty 切换到空花状态
func (s *FlowerSystem) setEmpty(id ecs.EntityID, flower *components.FlowerComponent) {
	flower.State = types.FlowerEmpty
	s.setCollidersActive(flower, false)
	s.setColor(id, s.config.EmptyColor)

	if s.Verbose {
		log.Printf("[FlowerSystem] Flower %d is empty", id)
	}
}

func (s *FlowerSystem) setCollidersActive(flower *components.FlowerComponent, active bool) {
	for _, colliderID := range []ecs.EntityID{flower.NectarCollider, flower.PetalCollider} {
		if collider, ok := ecs.GetComponent[*components.ColliderComponent](s.entityManager, colliderID); ok {
			collider.Active = active
		}
	}
}

func (s *FlowerSystem) setColor(id ecs.EntityID, c config.ColorConfig) {
	if material, ok := ecs.GetComponent[*components.MaterialComponent](s.entityManager, id); ok {
		material.SetBaseColor(c.RGBA())
	}
}

// clamp 将值限制在 [lo, hi] 范围内
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
