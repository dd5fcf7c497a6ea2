package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/decker502/hummingbird/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func vecNear(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, epsilon)
}

func mustNode(t *testing.T, g *Graph, parent ecs.EntityID, name string, kind types.NodeKind) ecs.EntityID {
	t.Helper()
	id, err := g.CreateNode(parent, name, kind)
	if err != nil {
		t.Fatalf("CreateNode(%q) error: %v", name, err)
	}
	return id
}

func TestCreateNodeHierarchy(t *testing.T) {
	g := NewGraph(ecs.NewEntityManager())

	root := mustNode(t, g, ecs.InvalidEntity, "Area", types.NodeContainer)
	a := mustNode(t, g, root, "A", types.NodePlantGroup)
	b := mustNode(t, g, root, "B", types.NodeContainer)

	children := g.Children(root)
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Fatalf("Children: got %v, want [%d %d]", children, a, b)
	}
	if g.Parent(a) != root {
		t.Errorf("Parent(a): got %d, want %d", g.Parent(a), root)
	}
	if g.Kind(a) != types.NodePlantGroup {
		t.Errorf("Kind(a): got %v, want PlantGroup", g.Kind(a))
	}
	if got, ok := g.Find(root, "B"); !ok || got != b {
		t.Errorf("Find(B): got (%d, %v), want (%d, true)", got, ok, b)
	}
	if _, ok := g.Find(root, "missing"); ok {
		t.Error("Find(missing) should fail")
	}
}

func TestCreateNodeUnderNonNode(t *testing.T) {
	em := ecs.NewEntityManager()
	g := NewGraph(em)
	plain := em.CreateEntity()

	if _, err := g.CreateNode(plain, "x", types.NodeContainer); !errors.Is(err, ErrNotSceneNode) {
		t.Errorf("error: got %v, want ErrNotSceneNode", err)
	}
}

func TestSetParentReparentAndCycle(t *testing.T) {
	g := NewGraph(ecs.NewEntityManager())
	root := mustNode(t, g, ecs.InvalidEntity, "root", types.NodeContainer)
	a := mustNode(t, g, root, "a", types.NodeContainer)
	b := mustNode(t, g, a, "b", types.NodeContainer)

	// 祖先不能挂到后代下
	if err := g.SetParent(root, b); !errors.Is(err, ErrCycle) {
		t.Errorf("SetParent(root, b): got %v, want ErrCycle", err)
	}
	if err := g.SetParent(a, a); !errors.Is(err, ErrCycle) {
		t.Errorf("SetParent(a, a): got %v, want ErrCycle", err)
	}

	// 移动 b 到 root 下
	if err := g.SetParent(b, root); err != nil {
		t.Fatalf("SetParent(b, root) error: %v", err)
	}
	if len(g.Children(a)) != 0 {
		t.Errorf("a should have no children after reparent, got %v", g.Children(a))
	}
	if got := g.Children(root); len(got) != 2 || got[1] != b {
		t.Errorf("root children: got %v, want [a b]", got)
	}
}

func TestEulerToQuat(t *testing.T) {
	tests := []struct {
		name  string
		euler mgl64.Vec3
		in    mgl64.Vec3
		want  mgl64.Vec3
	}{
		{"identity", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 0}},
		{"yaw 90 turns +Z to +X", mgl64.Vec3{0, 90, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}},
		{"pitch 90 turns +Y to +Z", mgl64.Vec3{90, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
		{"roll 90 turns +Y to -X", mgl64.Vec3{0, 0, 90}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{-1, 0, 0}},
		// 先 Z 再 Y：+Y -> -X -> +Z
		{"roll then yaw", mgl64.Vec3{0, 90, 90}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EulerToQuat(tt.euler).Rotate(tt.in)
			if !vecNear(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorldTransform(t *testing.T) {
	g := NewGraph(ecs.NewEntityManager())
	root := mustNode(t, g, ecs.InvalidEntity, "root", types.NodeContainer)
	plant := mustNode(t, g, root, "plant", types.NodePlantGroup)
	flower := mustNode(t, g, plant, "flower", types.NodeContainer)

	_ = g.SetLocalPosition(root, mgl64.Vec3{10, 0, 0})
	_ = g.SetLocalPosition(plant, mgl64.Vec3{0, 1, 0})
	_ = g.SetLocalRotation(plant, mgl64.Vec3{0, 0, 90})
	_ = g.SetLocalPosition(flower, mgl64.Vec3{0, 2, 0})

	pos, err := g.WorldPosition(flower)
	if err != nil {
		t.Fatalf("WorldPosition error: %v", err)
	}
	// 花株绕 Z 旋转 90°，花朵的局部 +Y 偏移变为世界 -X
	if want := (mgl64.Vec3{8, 1, 0}); !vecNear(pos, want) {
		t.Errorf("WorldPosition: got %v, want %v", pos, want)
	}

	up, err := g.Up(flower)
	if err != nil {
		t.Fatalf("Up error: %v", err)
	}
	if want := (mgl64.Vec3{-1, 0, 0}); !vecNear(up, want) {
		t.Errorf("Up: got %v, want %v", up, want)
	}
	if math.Abs(up.Len()-1) > epsilon {
		t.Errorf("Up should be unit length, got %v", up.Len())
	}

	if _, err := g.Up(ecs.EntityID(999)); !errors.Is(err, ErrNotSceneNode) {
		t.Errorf("Up(unknown): got %v, want ErrNotSceneNode", err)
	}
}
