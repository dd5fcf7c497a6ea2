package systems

import (
	"github.com/decker502/hummingbird/pkg/components"
	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/decker502/hummingbird/pkg/scene"
	"github.com/decker502/hummingbird/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

// ColliderSystem 球形碰撞体查询
// 只负责重叠检测，不做碰撞响应
type ColliderSystem struct {
	entityManager *ecs.EntityManager
	graph         *scene.Graph
}

// NewColliderSystem 创建碰撞体系统
func NewColliderSystem(em *ecs.EntityManager, graph *scene.Graph) *ColliderSystem {
	return &ColliderSystem{
		entityManager: em,
		graph:         graph,
	}
}

// OverlapSphere 查询与球体重叠的激活碰撞体
//
// 参数:
//   - center: 查询球心（世界坐标）
//   - radius: 查询球半径
//   - kind: 碰撞体类别（触发器或实体）
//
// 返回:
//   - []ecs.EntityID: 重叠的碰撞体实体（按ID升序）
func (s *ColliderSystem) OverlapSphere(center mgl64.Vec3, radius float64, kind types.ColliderKind) []ecs.EntityID {
	result := make([]ecs.EntityID, 0)

	for _, id := range ecs.GetEntitiesWith2[*components.ColliderComponent, *components.TransformComponent](s.entityManager) {
		collider, _ := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)
		if !collider.Active || collider.Kind != kind {
			continue
		}

		pos, err := s.graph.WorldPosition(id)
		if err != nil {
			continue
		}
		if checkSphereOverlap(center, radius, pos, collider.Radius) {
			result = append(result, id)
		}
	}
	return result
}

// checkSphereOverlap 检查两个球体是否重叠（相切视为重叠）
func checkSphereOverlap(c1 mgl64.Vec3, r1 float64, c2 mgl64.Vec3, r2 float64) bool {
	d := c1.Sub(c2)
	sum := r1 + r2
	return d.Dot(d) <= sum*sum
}
