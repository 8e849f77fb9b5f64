package ecs

import "testing"

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if !AddComponent(em, id, &testPositionComponent{X: 100, Y: 200}) {
		t.Fatal("AddComponent should succeed for existing entity")
	}

	pos, found := GetComponent[*testPositionComponent](em, id)
	if !found {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	// 返回的是同一个指针，修改对后续查询可见
	pos.X = 5
	again, _ := GetComponent[*testPositionComponent](em, id)
	if again.X != 5 {
		t.Error("Component pointer should be shared")
	}
}

func TestAddComponent_MissingEntity(t *testing.T) {
	em := NewEntityManager()
	if AddComponent(em, 99, &testPositionComponent{}) {
		t.Error("AddComponent should fail for missing entity")
	}
	if _, found := GetComponent[*testPositionComponent](em, 99); found {
		t.Error("GetComponent should fail for missing entity")
	}
}

// 值类型与指针类型是不同的组件类型
func TestGetComponent_TypeIdentity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	if _, found := GetComponent[testPositionComponent](em, id); found {
		t.Error("Value type should not match pointer component")
	}
	if _, found := GetComponent[*testVelocityComponent](em, id); found {
		t.Error("Should not find a component that was never added")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPositionComponent{})
	AddComponent(em, id1, &testVelocityComponent{})

	AddComponent(em, em.CreateEntity(), &testPositionComponent{})
	AddComponent(em, em.CreateEntity(), &testVelocityComponent{})

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected only id1 with both components, got %v", both)
	}
}

func TestGetEntitiesWith_SortedOrder(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{})
		AddComponent(em, id, &testVelocityComponent{})
	}

	ids := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(ids) != 50 {
		t.Fatalf("Expected 50 entities, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("query result not sorted: %v", ids)
		}
	}
}
