package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/decker502/hummingbird/pkg/types"
	"gopkg.in/yaml.v3"
)

// FlowerAreaConfigPath 默认配置文件路径
const FlowerAreaConfigPath = "data/flower_area.yaml"

// FlowerAreaConfig 花区配置
//
// 配置文件位置: data/flower_area.yaml
type FlowerAreaConfig struct {
	// AreaDiameter 花区直径（世界单位）
	// 智能体与花朵的相对距离观测按此值归一化
	AreaDiameter float64 `yaml:"areaDiameter"`

	// Flower 花朵配置
	Flower FlowerConfig `yaml:"flower"`

	// PlantRotation 重置时花株的随机旋转范围
	PlantRotation PlantRotationConfig `yaml:"plantRotation"`

	// Simulation 内置蜂鸟智能体的模拟参数
	Simulation SimulationConfig `yaml:"simulation"`
}

// SimulationConfig 模拟参数
// 内置智能体总是飞向最近的有花蜜的花朵，喙进入花蜜触发器后按速率取食
type SimulationConfig struct {
	// BirdSpeed 飞行速度（世界单位/秒）
	BirdSpeed float64 `yaml:"birdSpeed"`
	// BeakRadius 喙尖碰撞球半径
	BeakRadius float64 `yaml:"beakRadius"`
	// FeedRate 每秒请求的花蜜量
	FeedRate float64 `yaml:"feedRate"`
	// EpisodeSeconds 单回合最长时间（秒），花朵全部取空时提前结束
	EpisodeSeconds float64 `yaml:"episodeSeconds"`
}

// FlowerConfig 花朵配置
type FlowerConfig struct {
	// FullNectar 重置后的花蜜量
	FullNectar float64 `yaml:"fullNectar"`

	// FeedMode 取食扣减模式："legacy" 或 "consistent"
	FeedMode types.FeedMode `yaml:"feedMode"`

	// FullColor 有花蜜时的颜色
	FullColor ColorConfig `yaml:"fullColor"`

	// EmptyColor 花蜜耗尽时的颜色
	EmptyColor ColorConfig `yaml:"emptyColor"`

	// NectarRadius 花蜜触发器半径
	NectarRadius float64 `yaml:"nectarRadius"`

	// PetalRadius 花瓣碰撞体半径
	PetalRadius float64 `yaml:"petalRadius"`

	// NectarOffset 花蜜触发器沿花朵局部 Y 轴的偏移
	NectarOffset float64 `yaml:"nectarOffset"`
}

// ColorConfig 颜色配置，分量范围 0.0 ~ 1.0
type ColorConfig struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	// A 透明度，YAML 中省略时为 1（不透明），0 为完全透明
	A float64 `yaml:"a"`
}

// UnmarshalYAML 解析颜色，未写 a 时按不透明处理
func (c *ColorConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawColor ColorConfig
	r := rawColor{A: 1}
	if err := value.Decode(&r); err != nil {
		return err
	}
	*c = ColorConfig(r)
	return nil
}

// RGBA 转换为 color.RGBA
func (c ColorConfig) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

func (c ColorConfig) validate(name string) error {
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s component out of range [0, 1]: %+v", name, c)
		}
	}
	return nil
}

// AngleRange 角度范围（度）
type AngleRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// PlantRotationConfig 花株随机旋转范围
// X/Z 为轻微倾斜，Y 为绕竖直轴的完整旋转
type PlantRotationConfig struct {
	X AngleRange `yaml:"x"`
	Y AngleRange `yaml:"y"`
	Z AngleRange `yaml:"z"`
}

// DefaultFlowerAreaConfig 返回默认配置（与 data/flower_area.yaml 一致）
func DefaultFlowerAreaConfig() *FlowerAreaConfig {
	return &FlowerAreaConfig{
		AreaDiameter: 20,
		Flower: FlowerConfig{
			FullNectar:   1.0,
			FeedMode:     types.FeedModeLegacy,
			FullColor:    ColorConfig{R: 1.0, G: 0.0, B: 0.3, A: 1.0},
			EmptyColor:   ColorConfig{R: 0.5, G: 0.0, B: 1.0, A: 1.0},
			NectarRadius: 0.15,
			PetalRadius:  0.3,
			NectarOffset: 0.1,
		},
		PlantRotation: PlantRotationConfig{
			X: AngleRange{Min: -5, Max: 5},
			Y: AngleRange{Min: -180, Max: 180},
			Z: AngleRange{Min: -5, Max: 5},
		},
		Simulation: SimulationConfig{
			BirdSpeed:      4,
			BeakRadius:     0.05,
			FeedRate:       0.5,
			EpisodeSeconds: 60,
		},
	}
}

// LoadFlowerAreaConfig 加载花区配置
//
// 参数:
//   - path: 配置文件路径（如 "data/flower_area.yaml"）
//
// 返回:
//   - *FlowerAreaConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadFlowerAreaConfig(path string) (*FlowerAreaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flower area config: %w", err)
	}
	return LoadFlowerAreaConfigFromBytes(data)
}

// LoadFlowerAreaConfigFromBytes 从 YAML 数据解析花区配置
// 文件中缺省的字段保留默认值
func LoadFlowerAreaConfigFromBytes(data []byte) (*FlowerAreaConfig, error) {
	config := DefaultFlowerAreaConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse flower area config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flower area config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 检查:
//   - 花区直径、碰撞体半径为正，满花蜜量在 (0, 1]
//   - 取食模式为已知值
//   - 颜色分量在 [0, 1]
//   - 模拟参数为正
//   - 旋转范围 Min <= Max
func (c *FlowerAreaConfig) Validate() error {
	if c.AreaDiameter <= 0 {
		return fmt.Errorf("areaDiameter must be > 0, got %.2f", c.AreaDiameter)
	}

	f := c.Flower
	if f.FullNectar <= 0 || f.FullNectar > 1 {
		return fmt.Errorf("flower.fullNectar must be in (0, 1], got %.2f", f.FullNectar)
	}
	if !f.FeedMode.IsValid() {
		return fmt.Errorf("flower.feedMode must be %q or %q, got %q",
			types.FeedModeLegacy, types.FeedModeConsistent, f.FeedMode)
	}
	if f.NectarRadius <= 0 || f.PetalRadius <= 0 {
		return fmt.Errorf("flower collider radii must be > 0, got nectar=%.2f petal=%.2f",
			f.NectarRadius, f.PetalRadius)
	}
	if err := f.FullColor.validate("flower.fullColor"); err != nil {
		return err
	}
	if err := f.EmptyColor.validate("flower.emptyColor"); err != nil {
		return err
	}

	sim := c.Simulation
	if sim.BirdSpeed <= 0 || sim.BeakRadius <= 0 || sim.FeedRate <= 0 || sim.EpisodeSeconds <= 0 {
		return fmt.Errorf("simulation values must be > 0, got %+v", sim)
	}

	ranges := map[string]AngleRange{
		"x": c.PlantRotation.X,
		"y": c.PlantRotation.Y,
		"z": c.PlantRotation.Z,
	}
	for axis, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("plantRotation.%s invalid: min(%.1f) > max(%.1f)", axis, r.Min, r.Max)
		}
	}

	return nil
}
