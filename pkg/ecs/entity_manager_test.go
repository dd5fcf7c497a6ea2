package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testNectarComponent struct {
	Amount float64
}

type testMarkerComponent struct {
	Active bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID从1开始，0保留为无效ID
	if id1 != 1 || id2 != 2 {
		t.Errorf("IDs: got (%d, %d), want (1, 2)", id1, id2)
	}
	if id1 == InvalidEntity {
		t.Error("CreateEntity returned InvalidEntity")
	}
}

func TestEntityExists(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if !em.EntityExists(id) {
		t.Error("created entity should exist")
	}
	if em.EntityExists(InvalidEntity) {
		t.Error("InvalidEntity should never exist")
	}
	if em.EntityExists(EntityID(99)) {
		t.Error("entity that was never created should not exist")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testNectarComponent{Amount: 0.5})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testNectarComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	if got := comp.(*testNectarComponent).Amount; got != 0.5 {
		t.Errorf("Amount: got %v, want 0.5", got)
	}

	// 未创建的实体上添加组件应被忽略
	em.AddComponent(EntityID(99), &testNectarComponent{})
	if em.HasComponent(EntityID(99), reflect.TypeOf(&testNectarComponent{})) {
		t.Error("AddComponent on unknown entity should be a no-op")
	}
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testNectarComponent{Amount: float64(i)})
		if i%2 == 0 {
			em.AddComponent(id, &testMarkerComponent{})
			ids = append(ids, id)
		}
	}

	got := em.GetEntitiesWith(
		reflect.TypeOf(&testNectarComponent{}),
		reflect.TypeOf(&testMarkerComponent{}),
	)
	if len(got) != len(ids) {
		t.Fatalf("len: got %d, want %d", len(got), len(ids))
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Errorf("got[%d] = %d, want %d (result must be ordered by ID)", i, got[i], ids[i])
		}
	}
}

func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testNectarComponent{Amount: 1})

	if !HasComponent[*testNectarComponent](em, id) {
		t.Fatal("HasComponent: got false, want true")
	}
	if HasComponent[*testMarkerComponent](em, id) {
		t.Fatal("HasComponent: got true for missing component")
	}

	nectar, ok := GetComponent[*testNectarComponent](em, id)
	if !ok || nectar.Amount != 1 {
		t.Fatalf("GetComponent: got (%v, %v), want (Amount=1, true)", nectar, ok)
	}

	// 泛型与反射 API 共享同一份存储
	if !em.HasComponent(id, reflect.TypeOf(&testNectarComponent{})) {
		t.Error("generic AddComponent should be visible to reflection API")
	}

	if _, ok := GetComponent[*testMarkerComponent](em, id); ok {
		t.Error("GetComponent should miss for absent component")
	}

	AddComponent(em, id, &testMarkerComponent{Active: true})
	if got := GetEntitiesWith2[*testNectarComponent, *testMarkerComponent](em); len(got) != 1 || got[0] != id {
		t.Errorf("GetEntitiesWith2: got %v, want [%d]", got, id)
	}

	other := em.CreateEntity()
	AddComponent(em, other, &testNectarComponent{})
	if got := GetEntitiesWith2[*testNectarComponent, *testMarkerComponent](em); len(got) != 1 {
		t.Errorf("GetEntitiesWith2 with partial match: got %v, want [%d]", got, id)
	}
}
