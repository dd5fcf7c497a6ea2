package entities

import (
	"fmt"
	"math"

	"github.com/decker502/hummingbird/pkg/components"
	"github.com/decker502/hummingbird/pkg/config"
	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/decker502/hummingbird/pkg/scene"
	"github.com/decker502/hummingbird/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

// 花朵子节点名称
const (
	// FlowerColliderName 花瓣实体碰撞体节点
	FlowerColliderName = "FlowerCollider"
	// FlowerNectarColliderName 花蜜触发器节点
	FlowerNectarColliderName = "FlowerNectarCollider"
)

// NewFlowerAreaEntity 创建花区根节点
func NewFlowerAreaEntity(graph *scene.Graph, name string, position mgl64.Vec3) (ecs.EntityID, error) {
	id, err := graph.CreateNode(ecs.InvalidEntity, name, types.NodeContainer)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("failed to create flower area: %w", err)
	}
	if err := graph.SetLocalPosition(id, position); err != nil {
		return ecs.InvalidEntity, err
	}
	return id, nil
}

// NewContainerEntity 创建普通容器节点
func NewContainerEntity(graph *scene.Graph, parent ecs.EntityID, name string, position mgl64.Vec3) (ecs.EntityID, error) {
	id, err := graph.CreateNode(parent, name, types.NodeContainer)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("failed to create container %q: %w", name, err)
	}
	if err := graph.SetLocalPosition(id, position); err != nil {
		return ecs.InvalidEntity, err
	}
	return id, nil
}

// NewFlowerPlantEntity 创建花株节点（重置时整体随机旋转）
func NewFlowerPlantEntity(graph *scene.Graph, parent ecs.EntityID, position mgl64.Vec3) (ecs.EntityID, error) {
	id, err := graph.CreateNode(parent, "FlowerPlant", types.NodePlantGroup)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("failed to create flower plant: %w", err)
	}
	if err := graph.SetLocalPosition(id, position); err != nil {
		return ecs.InvalidEntity, err
	}
	return id, nil
}

// NewFlowerEntity 创建花朵实体
//
// 花朵节点下创建两个子节点：
//   - FlowerCollider: 花瓣实体碰撞体
//   - FlowerNectarCollider: 花蜜触发器，沿花朵局部 Y 轴偏移 NectarOffset
//
// 花朵创建后处于未初始化状态，需要 FlowerSystem.ResetFlower 之后才能取食。
//
// 参数:
//   - graph: 场景树
//   - cfg: 花朵配置（碰撞体半径、初始颜色）
//   - parent: 父节点（花株或容器）
//   - position: 局部位置
//   - rotation: 局部欧拉角（度）
//
// 返回:
//   - ecs.EntityID: 花朵实体ID
//   - error: 创建失败时返回错误
func NewFlowerEntity(graph *scene.Graph, cfg config.FlowerConfig, parent ecs.EntityID, position, rotation mgl64.Vec3) (ecs.EntityID, error) {
	em := graph.EntityManager()

	flowerID, err := graph.CreateNode(parent, "Flower", types.NodeContainer)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("failed to create flower: %w", err)
	}
	if err := graph.SetLocalPosition(flowerID, position); err != nil {
		return ecs.InvalidEntity, err
	}
	if err := graph.SetLocalRotation(flowerID, rotation); err != nil {
		return ecs.InvalidEntity, err
	}

	petalID, err := graph.CreateNode(flowerID, FlowerColliderName, types.NodeContainer)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("failed to create petal collider: %w", err)
	}
	ecs.AddComponent(em, petalID, &components.ColliderComponent{
		Kind:   types.ColliderSolid,
		Radius: cfg.PetalRadius,
		Active: true,
	})

	nectarID, err := graph.CreateNode(flowerID, FlowerNectarColliderName, types.NodeContainer)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("failed to create nectar collider: %w", err)
	}
	if err := graph.SetLocalPosition(nectarID, mgl64.Vec3{0, cfg.NectarOffset, 0}); err != nil {
		return ecs.InvalidEntity, err
	}
	ecs.AddComponent(em, nectarID, &components.ColliderComponent{
		Kind:   types.ColliderTrigger,
		Radius: cfg.NectarRadius,
		Active: true,
	})

	material := &components.MaterialComponent{}
	material.SetBaseColor(cfg.FullColor.RGBA())
	ecs.AddComponent(em, flowerID, material)

	// 与宿主引擎一致：按名称查找子节点来绑定碰撞体
	petal, _ := graph.Find(flowerID, FlowerColliderName)
	nectar, _ := graph.Find(flowerID, FlowerNectarColliderName)
	ecs.AddComponent(em, flowerID, &components.FlowerComponent{
		State:          types.FlowerUninitialized,
		NectarCollider: nectar,
		PetalCollider:  petal,
	})

	return flowerID, nil
}

// SampleAreaLayout 示例花区布局参数
type SampleAreaLayout struct {
	// Plants 花株数量，沿圆周均匀分布
	Plants int
	// FlowersPerPlant 每个花株上的花朵数量
	FlowersPerPlant int
	// LooseFlowers 放在普通容器（"Bushes"）下的散花数量
	LooseFlowers int
}

// NewSampleFlowerArea 按布局创建一个完整花区
//
// 花株位于直径 0.7 倍的圆周上，每朵花沿花株向外倾斜 30°；
// 散花放在中心附近的容器节点下，用于验证容器节点的穿透扫描。
func NewSampleFlowerArea(graph *scene.Graph, cfg *config.FlowerAreaConfig, layout SampleAreaLayout) (ecs.EntityID, error) {
	areaID, err := NewFlowerAreaEntity(graph, "FlowerArea", mgl64.Vec3{})
	if err != nil {
		return ecs.InvalidEntity, err
	}

	plantRing := cfg.AreaDiameter * 0.35
	for i := 0; i < layout.Plants; i++ {
		angle := 2 * math.Pi * float64(i) / float64(layout.Plants)
		plantID, err := NewFlowerPlantEntity(graph, areaID,
			mgl64.Vec3{plantRing * math.Cos(angle), 0, plantRing * math.Sin(angle)})
		if err != nil {
			return ecs.InvalidEntity, err
		}

		for j := 0; j < layout.FlowersPerPlant; j++ {
			yaw := 360 * float64(j) / float64(layout.FlowersPerPlant)
			rad := mgl64.DegToRad(yaw)
			pos := mgl64.Vec3{0.5 * math.Sin(rad), 1 + 0.3*float64(j), 0.5 * math.Cos(rad)}
			if _, err := NewFlowerEntity(graph, cfg.Flower, plantID, pos, mgl64.Vec3{30, yaw, 0}); err != nil {
				return ecs.InvalidEntity, err
			}
		}
	}

	if layout.LooseFlowers > 0 {
		bushes, err := NewContainerEntity(graph, areaID, "Bushes", mgl64.Vec3{})
		if err != nil {
			return ecs.InvalidEntity, err
		}
		for k := 0; k < layout.LooseFlowers; k++ {
			offset := float64(k) - float64(layout.LooseFlowers-1)/2
			if _, err := NewFlowerEntity(graph, cfg.Flower, bushes, mgl64.Vec3{offset, 0.5, 0}, mgl64.Vec3{}); err != nil {
				return ecs.InvalidEntity, err
			}
		}
	}

	return areaID, nil
}
