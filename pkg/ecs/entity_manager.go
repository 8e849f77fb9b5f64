// Package ecs 提供最小的实体-组件存储
//
// 组件按具体类型（通常是指针类型）索引，每个实体每种类型最多一个组件。
// 查询使用泛型函数，避免调用方手写 reflect.TypeOf。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// EntityManager 管理所有实体和组件
//
// 非并发安全，只在游戏循环线程中使用。
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]any
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// EntityCount 返回实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// AddComponent 为实体添加组件，同类型组件会被覆盖
//
// 返回 false 表示实体不存在。
func AddComponent[T any](em *EntityManager, id EntityID, component T) bool {
	compMap, exists := em.components[id]
	if !exists {
		return false
	}
	compMap[reflect.TypeFor[T]()] = component
	return true
}

// GetComponent 获取实体的特定类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	compMap, exists := em.components[id]
	if !exists {
		return zero, false
	}
	comp, found := compMap[reflect.TypeFor[T]()]
	if !found {
		return zero, false
	}
	return comp.(T), true
}

// GetEntitiesWith2 查询同时拥有 T1、T2 的所有实体，按 ID 升序返回
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.query(reflect.TypeFor[T1](), reflect.TypeFor[T2]())
}

func (em *EntityManager) query(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	// map 遍历顺序随机，排序后保证每帧处理顺序一致
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
