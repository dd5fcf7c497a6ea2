// Package ecs 提供场景节点、碰撞体和花朵共用的实体-组件存储
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 实体标识，0 保留为无效值
type EntityID uint64

// InvalidEntity 无效实体（根节点的父节点、查找失败时的返回值）
const InvalidEntity EntityID = 0

// EntityManager 按组件类型存储每个实体的组件
//
// 实体创建后常驻：花区在场景生命周期内只构建一次，重置只修改组件数据。
type EntityManager struct {
	nextID     uint64
	components map[EntityID]map[reflect.Type]interface{}
}

// NewEntityManager 创建空的实体管理器
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]interface{}),
	}
}

// CreateEntity 分配新的实体ID（从 1 递增）
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// EntityExists 实体是否由本管理器创建
func (em *EntityManager) EntityExists(id EntityID) bool {
	_, exists := em.components[id]
	return exists
}

// AddComponent 挂载组件，同类型组件被替换
// 对未创建的实体调用时忽略
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

// GetComponent 按类型读取组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	comp, found := em.components[id][componentType]
	return comp, found
}

// HasComponent 实体是否挂载了该类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.components[id][componentType]
	return found
}

// GetEntitiesWith 返回同时拥有所有指定组件类型的实体，按ID升序
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
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

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
