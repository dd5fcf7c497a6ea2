package systems

import (
	"testing"

	"github.com/decker502/hummingbird/pkg/components"
	"github.com/decker502/hummingbird/pkg/config"
	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/decker502/hummingbird/pkg/entities"
	"github.com/decker502/hummingbird/pkg/scene"
	"github.com/decker502/hummingbird/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

func TestCheckSphereOverlap(t *testing.T) {
	tests := []struct {
		name string
		c1   mgl64.Vec3
		r1   float64
		c2   mgl64.Vec3
		r2   float64
		want bool
	}{
		{"same center", mgl64.Vec3{}, 1, mgl64.Vec3{}, 1, true},
		{"touching", mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{2, 0, 0}, 1, true},
		{"apart", mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{0, 3, 0}, 1, false},
		{"diagonal inside", mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{1, 1, 1}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkSphereOverlap(tt.c1, tt.r1, tt.c2, tt.r2); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// TestOverlapSphereNectar 鸟喙只能碰到激活的花蜜触发器
func TestOverlapSphereNectar(t *testing.T) {
	em := ecs.NewEntityManager()
	graph := scene.NewGraph(em)
	cfg := config.DefaultFlowerAreaConfig().Flower
	fs := NewFlowerSystem(em, graph, cfg)
	cs := NewColliderSystem(em, graph)

	root, _ := entities.NewFlowerAreaEntity(graph, "Area", mgl64.Vec3{})
	near, _ := entities.NewFlowerEntity(graph, cfg, root, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{})
	_, _ = entities.NewFlowerEntity(graph, cfg, root, mgl64.Vec3{5, 0, 0}, mgl64.Vec3{})
	_ = fs.ResetFlower(near)

	nearFlower, _ := ecs.GetComponent[*components.FlowerComponent](em, near)
	beak := mgl64.Vec3{0, cfg.NectarOffset, 0}

	hits := cs.OverlapSphere(beak, 0.01, types.ColliderTrigger)
	if len(hits) != 1 || hits[0] != nearFlower.NectarCollider {
		t.Fatalf("OverlapSphere: got %v, want [%d]", hits, nearFlower.NectarCollider)
	}

	solids := cs.OverlapSphere(beak, 0.01, types.ColliderSolid)
	if len(solids) != 1 || solids[0] != nearFlower.PetalCollider {
		t.Errorf("solid overlap: got %v, want [%d]", solids, nearFlower.PetalCollider)
	}

	// 取空后碰撞体关闭
	_, _ = fs.Feed(near, 1)
	if hits := cs.OverlapSphere(beak, 0.01, types.ColliderTrigger); len(hits) != 0 {
		t.Errorf("OverlapSphere after empty: got %v, want []", hits)
	}
}
