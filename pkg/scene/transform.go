package scene

import (
	"fmt"

	"github.com/decker502/hummingbird/pkg/components"
	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// EulerToQuat 把欧拉角（度）转换为四元数
// 组合顺序：先绕 Z，再绕 X，最后绕 Y
func EulerToQuat(euler mgl64.Vec3) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(euler.X()), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(mgl64.DegToRad(euler.Y()), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(euler.Z()), mgl64.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// SetLocalPosition 设置节点局部位置
func (g *Graph) SetLocalPosition(id ecs.EntityID, pos mgl64.Vec3) error {
	tr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, id)
	if !ok {
		return fmt.Errorf("set local position of %d: %w", id, ErrNotSceneNode)
	}
	tr.LocalPosition = pos
	return nil
}

// SetLocalRotation 设置节点局部欧拉角（度）
func (g *Graph) SetLocalRotation(id ecs.EntityID, euler mgl64.Vec3) error {
	tr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, id)
	if !ok {
		return fmt.Errorf("set local rotation of %d: %w", id, ErrNotSceneNode)
	}
	tr.LocalRotation = euler
	return nil
}

// WorldRotation 计算节点的世界旋转（沿父链组合局部旋转）
func (g *Graph) WorldRotation(id ecs.EntityID) (mgl64.Quat, error) {
	rot, _, err := g.worldTransform(id)
	return rot, err
}

// WorldPosition 计算节点的世界位置
func (g *Graph) WorldPosition(id ecs.EntityID) (mgl64.Vec3, error) {
	_, pos, err := g.worldTransform(id)
	return pos, err
}

// Up 返回节点局部 Y 轴在世界坐标系中的方向（单位向量）
func (g *Graph) Up(id ecs.EntityID) (mgl64.Vec3, error) {
	rot, err := g.WorldRotation(id)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return rot.Rotate(WorldUp).Normalize(), nil
}

// worldTransform 从根到节点逐级组合变换
//   - 世界旋转 = 父世界旋转 * 局部旋转
//   - 世界位置 = 父世界位置 + 父世界旋转(局部位置)
func (g *Graph) worldTransform(id ecs.EntityID) (mgl64.Quat, mgl64.Vec3, error) {
	tr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, id)
	if !ok {
		return mgl64.QuatIdent(), mgl64.Vec3{}, fmt.Errorf("world transform of %d: %w", id, ErrNotSceneNode)
	}

	chain := []*components.TransformComponent{tr}
	for p := tr.Parent; p != ecs.InvalidEntity; {
		ptr, ok := ecs.GetComponent[*components.TransformComponent](g.entityManager, p)
		if !ok {
			break
		}
		chain = append(chain, ptr)
		p = ptr.Parent
	}

	rot := mgl64.QuatIdent()
	pos := mgl64.Vec3{}
	for i := len(chain) - 1; i >= 0; i-- {
		pos = pos.Add(rot.Rotate(chain[i].LocalPosition))
		rot = rot.Mul(EulerToQuat(chain[i].LocalRotation))
	}
	return rot, pos, nil
}
