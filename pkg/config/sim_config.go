// Package config 提供模拟程序的配置加载与验证
//
// 配置文件为 YAML 格式。默认值来自嵌入的 default_sim.yaml，
// 用户配置文件在默认值之上覆盖，最后统一验证。
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/superball/pkg/types"
	"github.com/gonewx/superball/pkg/utils"
)

//go:embed default_sim.yaml
var defaultSimYAML []byte

// SimConfig 模拟程序的完整配置
type SimConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Viewport ViewportConfig `yaml:"viewport"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Ball     BallConfig     `yaml:"ball"`
	Floor    FloorConfig    `yaml:"floor"`
	Render   RenderConfig   `yaml:"render"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title  string `yaml:"title"`
	AppID  string `yaml:"appID"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ViewportConfig 坐标映射配置
//
// Height 是 Y 轴翻转所用的视口高度，不必与窗口高度一致。
type ViewportConfig struct {
	Scale  float64 `yaml:"scale"`
	Height float64 `yaml:"height"`
}

// Vec2 YAML 中的二维向量
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PhysicsConfig 物理步进配置
type PhysicsConfig struct {
	Gravity    Vec2 `yaml:"gravity"`    // 重力加速度（世界单位/秒²）
	Iterations int  `yaml:"iterations"` // 约束求解迭代次数
}

// BallConfig 小球创建参数
type BallConfig struct {
	Spawn          Vec2    `yaml:"spawn"`          // 出生点（屏幕坐标）
	LinearDamping  float64 `yaml:"linearDamping"`  // 线性阻尼，模拟空气阻力
	Density        float64 `yaml:"density"`        // 密度，质量 = 密度 × 面积
	ColliderRadius float64 `yaml:"colliderRadius"` // 碰撞半径（世界单位）
	Restitution    float64 `yaml:"restitution"`    // 弹性系数
	Friction       float64 `yaml:"friction"`       // 摩擦系数
	VisualRadius   float64 `yaml:"visualRadius"`   // 绘制半径（世界单位）
}

// FloorConfig 可选的静态地面
type FloorConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ScreenY     float64 `yaml:"screenY"`     // 地面所在的屏幕 Y 坐标
	Thickness   float64 `yaml:"thickness"`   // 线段半径（世界单位）
	Restitution float64 `yaml:"restitution"` // 地面弹性系数
}

// RGBA 归一化颜色 [r, g, b, a]，每个分量取值 0~1
type RGBA [4]float64

// RenderConfig 渲染配置
type RenderConfig struct {
	Background RGBA    `yaml:"background"`
	BallColor  RGBA    `yaml:"ballColor"`
	Tolerance  float64 `yaml:"tolerance"` // 圆形多边形近似的最大偏差（像素）
}

// Color 转换为 image/color 颜色
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: channel(c[0]),
		G: channel(c[1]),
		B: channel(c[2]),
		A: channel(c[3]),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Screen 将 Vec2 视为屏幕坐标
func (v Vec2) Screen() types.ScreenVector {
	return types.ScreenVector{X: v.X, Y: v.Y}
}

// DefaultSimConfig 返回嵌入的默认配置
//
// 嵌入文件在编译期确定，解析失败属于程序错误，直接 panic。
func DefaultSimConfig() *SimConfig {
	var cfg SimConfig
	if err := yaml.Unmarshal(defaultSimYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default sim config is broken: %v", err))
	}
	return &cfg
}

// LoadSimConfig 加载模拟配置
//
// 参数:
//   - path: 配置文件路径，为空时只使用默认配置
//
// 返回:
//   - *SimConfig: 合并默认值后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadSimConfig(path string) (*SimConfig, error) {
	cfg := DefaultSimConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sim config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sim config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sim config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *SimConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if _, err := c.CoordinateMapper(); err != nil {
		return fmt.Errorf("viewport: %w", err)
	}

	if !finite(c.Physics.Gravity.X) || !finite(c.Physics.Gravity.Y) {
		return fmt.Errorf("gravity must be finite, got (%v, %v)", c.Physics.Gravity.X, c.Physics.Gravity.Y)
	}
	if c.Physics.Iterations < 1 {
		return fmt.Errorf("physics iterations must be >= 1, got %d", c.Physics.Iterations)
	}

	b := c.Ball
	if !finite(b.Spawn.X) || !finite(b.Spawn.Y) {
		return fmt.Errorf("ball spawn must be finite, got (%v, %v)", b.Spawn.X, b.Spawn.Y)
	}
	if b.LinearDamping < 0 {
		return fmt.Errorf("ball linearDamping must be >= 0, got %v", b.LinearDamping)
	}
	if b.Density <= 0 {
		return fmt.Errorf("ball density must be positive, got %v", b.Density)
	}
	if b.ColliderRadius <= 0 {
		return fmt.Errorf("ball colliderRadius must be positive, got %v", b.ColliderRadius)
	}
	if b.VisualRadius <= 0 {
		return fmt.Errorf("ball visualRadius must be positive, got %v", b.VisualRadius)
	}
	if b.Restitution < 0 {
		return fmt.Errorf("ball restitution must be >= 0, got %v", b.Restitution)
	}
	if b.Friction < 0 {
		return fmt.Errorf("ball friction must be >= 0, got %v", b.Friction)
	}

	if c.Floor.Enabled {
		if c.Floor.Thickness < 0 {
			return fmt.Errorf("floor thickness must be >= 0, got %v", c.Floor.Thickness)
		}
		if c.Floor.Restitution < 0 {
			return fmt.Errorf("floor restitution must be >= 0, got %v", c.Floor.Restitution)
		}
	}

	if c.Render.Tolerance <= 0 {
		return fmt.Errorf("render tolerance must be positive, got %v", c.Render.Tolerance)
	}
	for name, rgba := range map[string]RGBA{"background": c.Render.Background, "ballColor": c.Render.BallColor} {
		for i, v := range rgba {
			if v < 0 || v > 1 {
				return fmt.Errorf("render %s[%d] must be within [0, 1], got %v", name, i, v)
			}
		}
	}

	return nil
}

// CoordinateMapper 根据视口配置创建坐标映射器
func (c *SimConfig) CoordinateMapper() (utils.CoordinateMapper, error) {
	return utils.NewCoordinateMapper(c.Viewport.Scale, c.Viewport.Height)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
