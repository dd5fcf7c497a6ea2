// Package scene 提供基于 ECS 的场景树
//
// 节点是拥有 TransformComponent 和 NodeComponent 的实体。
// Graph 负责层级维护和世界变换计算，并作为只读遍历接口提供给花区扫描。
package scene

import (
	"errors"
	"fmt"

	"github.com/decker502/hummingbird/pkg/components"
	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/decker502/hummingbird/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNotSceneNode 实体不是场景节点
	ErrNotSceneNode = errors.New("entity is not a scene node")
	// ErrCycle 挂接会使节点成为自身的祖先
	ErrCycle = errors.New("scene graph cycle")
)

// WorldUp 世界坐标系的向上方向
var WorldUp = mgl64.Vec3{0, 1, 0}

// Graph 场景树
type Graph struct {
	entityManager *ecs.EntityManager
}

// NewGraph 创建场景树
func NewGraph(em *ecs.EntityManager) *Graph {
	return &Graph{entityManager: em}
}

// EntityManager 返回底层实体管理器
func (g *Graph) EntityManager() *ecs.EntityManager {
	return g.entityManager
}

// CreateNode 创建节点并挂到 parent 下
//
// 参数:
//   - parent: 父节点，ecs.InvalidEntity 表示创建根节点
//   - name: 节点名称
//   - kind: 节点类别
//
// 返回:
//   - ecs.EntityID: 新节点ID
//   - error: parent 不是场景节点时返回 ErrNotSceneNode
func (g *Graph) CreateNode(parent ecs.EntityID, name string, kind types.NodeKind) (ecs.EntityID, error) {
	if parent != ecs.InvalidEntity && !g.IsNode(parent) {
		return ecs.InvalidEntity, fmt.Errorf("create node %q under %d: %w", name, parent, ErrNotSceneNode)
	}

	id := g.entityManager.CreateEntity()
	ecs.AddComponent(g.entityManager, id, &components.TransformComponent{})
	ecs.AddComponent(g.entityManager, id, &components.NodeComponent{Name: name, Kind: kind})

	if parent != ecs.InvalidEntity {
		if err := g.SetParent(id, parent); err != nil {
			return ecs.InvalidEntity, err
		}
	}
	return id, nil
}

// IsNode 检查实体是否为场景节点
func (g *Graph) IsNode(id ecs.EntityID) bool {
	return ecs.HasComponent[*components.TransformComponent](g.entityManager, id) &&
		ecs.HasComponent[*components.NodeComponent](g.entityManager, id)
}

// SetParent 把 child 挂到 parent 下（追加到子节点末尾）
// 如果 child 已有父节点，先从原父节点移除
func (g *Graph) SetParent(child, parent ecs.EntityID) error {
	childTr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, child)
	if !ok {
		return fmt.Errorf("set parent of %d: %w", child, ErrNotSceneNode)
	}
	parentTr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, parent)
	if !ok {
		return fmt.Errorf("set parent of %d to %d: %w", child, parent, ErrNotSceneNode)
	}

	// parent 不能是 child 自身或其后代
	for p := parent; p != ecs.InvalidEntity; p = g.Parent(p) {
		if p == child {
			return fmt.Errorf("set parent of %d to %d: %w", child, parent, ErrCycle)
		}
	}

	if childTr.Parent != ecs.InvalidEntity {
		if oldTr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, childTr.Parent); ok {
			oldTr.Children = removeID(oldTr.Children, child)
		}
	}

	childTr.Parent = parent
	parentTr.Children = append(parentTr.Children, child)
	return nil
}

func removeID(ids []ecs.EntityID, id ecs.EntityID) []ecs.EntityID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Parent 返回父节点，根节点或非节点返回 ecs.InvalidEntity
func (g *Graph) Parent(id ecs.EntityID) ecs.EntityID {
	if tr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, id); ok {
		return tr.Parent
	}
	return ecs.InvalidEntity
}

// Children 返回子节点（添加顺序）
func (g *Graph) Children(id ecs.EntityID) []ecs.EntityID {
	if tr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, id); ok {
		return tr.Children
	}
	return nil
}

// Kind 返回节点类别，非节点按容器处理
func (g *Graph) Kind(id ecs.EntityID) types.NodeKind {
	if node, ok := ecs.GetComponent[*components.NodeComponent](g.entityManager, id); ok {
		return node.Kind
	}
	return types.NodeContainer
}

// Name 返回节点名称
func (g *Graph) Name(id ecs.EntityID) string {
	if node, ok := ecs.GetComponent[*components.NodeComponent](g.entityManager, id); ok {
		return node.Name
	}
	return ""
}

// Find 在直接子节点中按名称查找
func (g *Graph) Find(parent ecs.EntityID, name string) (ecs.EntityID, bool) {
	for _, child := range g.Children(parent) {
		if g.Name(child) == name {
			return child, true
		}
	}
	return ecs.InvalidEntity, false
}

// Flower 返回节点上挂载的花朵组件
func (g *Graph) Flower(id ecs.EntityID) (*components.FlowerComponent, bool) {
	return ecs.GetComponent[*components.FlowerComponent](g.entityManager, id)
}
