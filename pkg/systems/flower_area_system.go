package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/hummingbird/pkg/components"
	"github.com/decker502/hummingbird/pkg/config"
	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/decker502/hummingbird/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNectarNotIndexed 花蜜触发器不属于该花区的任何花朵
	ErrNectarNotIndexed = errors.New("nectar collider not indexed")
	// ErrAreaNotScanned 花区尚未扫描
	ErrAreaNotScanned = errors.New("flower area not scanned")
	// ErrAreaAlreadyScanned 花区索引只构建一次
	ErrAreaAlreadyScanned = errors.New("flower area already scanned")
	// ErrAreaNotFound 花区实体不存在，索引无处保存
	ErrAreaNotFound = errors.New("flower area entity not found")
	// ErrDuplicateNectar 两朵花共用同一个花蜜触发器
	ErrDuplicateNectar = errors.New("duplicate nectar collider")
)

// SceneTree 花区扫描所需的只读场景树接口
// scene.Graph 实现了此接口，测试中可以用合成树代替
type SceneTree interface {
	// Children 返回子节点（遍历顺序即扫描顺序）
	Children(id ecs.EntityID) []ecs.EntityID
	// Kind 返回节点类别
	Kind(id ecs.EntityID) types.NodeKind
	// Flower 返回节点上挂载的花朵组件
	Flower(id ecs.EntityID) (*components.FlowerComponent, bool)
}

// PlantRotator 设置花株局部旋转
type PlantRotator interface {
	SetLocalRotation(id ecs.EntityID, euler mgl64.Vec3) error
}

// RandomSource 均匀随机数源，返回 [0, 1)
// *rand.Rand（math/rand/v2）满足此接口
type RandomSource interface {
	Float64() float64
}

// FlowerAreaSystem 管理花区：扫描花株和花朵、按花蜜触发器反查花朵、整体重置
type FlowerAreaSystem struct {
	entityManager *ecs.EntityManager
	tree          SceneTree
	rotator       PlantRotator
	flowerSystem  *FlowerSystem
	rotation      config.PlantRotationConfig
	rng           RandomSource

	// Verbose 输出扫描和重置的调试日志
	Verbose bool
}

// NewFlowerAreaSystem 创建花区系统
//
// 参数:
//   - em: 实体管理器（花区索引组件存放在花区实体上）
//   - tree: 只读场景树
//   - rotator: 花株旋转设置接口
//   - flowerSystem: 花朵系统，用于重置每朵花
//   - rotation: 花株随机旋转范围
//   - rng: 随机数源
func NewFlowerAreaSystem(
	em *ecs.EntityManager,
	tree SceneTree,
	rotator PlantRotator,
	flowerSystem *FlowerSystem,
	rotation config.PlantRotationConfig,
	rng RandomSource,
) *FlowerAreaSystem {
	return &FlowerAreaSystem{
		entityManager: em,
		tree:          tree,
		rotator:       rotator,
		flowerSystem:  flowerSystem,
		rotation:      rotation,
		rng:           rng,
	}
}

// ScanSubtree 深度优先（先序）扫描 root 的子树，收集花株和花朵
//
// 对每个子节点：
//   - 花株节点：记录后继续扫描其子节点（花株下可以再嵌套花株）
//   - 挂有花朵的节点：记录花朵并登记花蜜触发器，不再深入（花朵之下不会有花朵）
//   - 其他节点：作为容器继续扫描其子节点
//
// 每个节点只访问一次，复杂度与子树节点数成线性关系。
func ScanSubtree(tree SceneTree, root ecs.EntityID) (*components.FlowerAreaComponent, error) {
	area := &components.FlowerAreaComponent{
		Plants:      make([]ecs.EntityID, 0),
		Flowers:     make([]ecs.EntityID, 0),
		NectarIndex: make(map[ecs.EntityID]ecs.EntityID),
	}
	if err := scanChildren(tree, root, area); err != nil {
		return nil, err
	}
	area.Scanned = true
	return area, nil
}

func scanChildren(tree SceneTree, parent ecs.EntityID, area *components.FlowerAreaComponent) error {
	for _, child := range tree.Children(parent) {
		if tree.Kind(child) == types.NodePlantGroup {
			area.Plants = append(area.Plants, child)
			if err := scanChildren(tree, child, area); err != nil {
				return err
			}
			continue
		}

		if flower, ok := tree.Flower(child); ok {
			if owner, exists := area.NectarIndex[flower.NectarCollider]; exists {
				return fmt.Errorf("flower %d and %d share nectar collider %d: %w",
					owner, child, flower.NectarCollider, ErrDuplicateNectar)
			}
			area.Flowers = append(area.Flowers, child)
			area.NectarIndex[flower.NectarCollider] = child
			continue
		}

		if err := scanChildren(tree, child, area); err != nil {
			return err
		}
	}
	return nil
}

// ScanArea 扫描花区实体的子树并把索引保存到花区实体上
// 每个花区只能扫描一次；areaID 必须是已创建的实体
func (s *FlowerAreaSystem) ScanArea(areaID ecs.EntityID) error {
	if !s.entityManager.EntityExists(areaID) {
		return fmt.Errorf("scan area %d: %w", areaID, ErrAreaNotFound)
	}
	if existing, ok := ecs.GetComponent[*components.FlowerAreaComponent](s.entityManager, areaID); ok && existing.Scanned {
		return fmt.Errorf("scan area %d: %w", areaID, ErrAreaAlreadyScanned)
	}

	area, err := ScanSubtree(s.tree, areaID)
	if err != nil {
		return fmt.Errorf("scan area %d: %w", areaID, err)
	}
	ecs.AddComponent(s.entityManager, areaID, area)

	log.Printf("[FlowerAreaSystem] Area %d scanned: %d plants, %d flowers",
		areaID, len(area.Plants), len(area.Flowers))
	return nil
}

func (s *FlowerAreaSystem) area(areaID ecs.EntityID) (*components.FlowerAreaComponent, error) {
	area, ok := ecs.GetComponent[*components.FlowerAreaComponent](s.entityManager, areaID)
	if !ok || !area.Scanned {
		return nil, fmt.Errorf("area %d: %w", areaID, ErrAreaNotScanned)
	}
	return area, nil
}

// ResetFlowers 重置花区
//
// 先给每个花株一个随机局部旋转（绕 Y 轴任意角度，绕 X/Z 轴轻微倾斜），
// 再按扫描顺序重置每朵花。
func (s *FlowerAreaSystem) ResetFlowers(areaID ecs.EntityID) error {
	area, err := s.area(areaID)
	if err != nil {
		return err
	}

	for _, plant := range area.Plants {
		euler := mgl64.Vec3{
			s.randomRange(s.rotation.X),
			s.randomRange(s.rotation.Y),
			s.randomRange(s.rotation.Z),
		}
		if err := s.rotator.SetLocalRotation(plant, euler); err != nil {
			return fmt.Errorf("rotate plant %d: %w", plant, err)
		}
	}

	for _, flower := range area.Flowers {
		if err := s.flowerSystem.ResetFlower(flower); err != nil {
			return fmt.Errorf("reset area %d: %w", areaID, err)
		}
	}

	if s.Verbose {
		log.Printf("[FlowerAreaSystem] Area %d reset: %d plants rotated, %d flowers refilled",
			areaID, len(area.Plants), len(area.Flowers))
	}
	return nil
}

// randomRange 在 [r.Min, r.Max) 内均匀取值
func (s *FlowerAreaSystem) randomRange(r config.AngleRange) float64 {
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}

// GetFlowerFromNectar 根据花蜜触发器查找所属花朵
//
// 返回:
//   - ecs.EntityID: 花朵实体
//   - error: 未扫描返回 ErrAreaNotScanned，触发器未登记返回 ErrNectarNotIndexed
func (s *FlowerAreaSystem) GetFlowerFromNectar(areaID, nectarCollider ecs.EntityID) (ecs.EntityID, error) {
	area, err := s.area(areaID)
	if err != nil {
		return ecs.InvalidEntity, err
	}
	flower, ok := area.NectarIndex[nectarCollider]
	if !ok {
		return ecs.InvalidEntity, fmt.Errorf("collider %d in area %d: %w", nectarCollider, areaID, ErrNectarNotIndexed)
	}
	return flower, nil
}

// Flowers 返回花区内所有花朵（扫描顺序），未扫描返回 nil
func (s *FlowerAreaSystem) Flowers(areaID ecs.EntityID) []ecs.EntityID {
	area, err := s.area(areaID)
	if err != nil {
		return nil
	}
	return area.Flowers
}

// Plants 返回花区内所有花株（扫描顺序），未扫描返回 nil
func (s *FlowerAreaSystem) Plants(areaID ecs.EntityID) []ecs.EntityID {
	area, err := s.area(areaID)
	if err != nil {
		return nil
	}
	return area.Plants
}

// NearestFlowerWithNectar 返回离 point 最近且仍有花蜜的花朵
// 没有可用花朵时第二个返回值为 false
func (s *FlowerAreaSystem) NearestFlowerWithNectar(areaID ecs.EntityID, point mgl64.Vec3) (ecs.EntityID, bool) {
	nearest := ecs.InvalidEntity
	bestDist := 0.0

	for _, flower := range s.Flowers(areaID) {
		if !s.flowerSystem.HasNectar(flower) {
			continue
		}
		center, err := s.flowerSystem.CenterPosition(flower)
		if err != nil {
			continue
		}
		dist := center.Sub(point).Len()
		if nearest == ecs.InvalidEntity || dist < bestDist {
			nearest = flower
			bestDist = dist
		}
	}
	return nearest, nearest != ecs.InvalidEntity
}
