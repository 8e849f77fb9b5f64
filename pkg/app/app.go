// Package app 提供模拟程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 Run()，移动端通过 mobile/mobile.go 调用 NewApp()。
package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/superball/pkg/config"
	"github.com/gonewx/superball/pkg/game"
	"github.com/gonewx/superball/pkg/physics"
	"github.com/gonewx/superball/pkg/render"
	"github.com/gonewx/superball/pkg/scenes"
)

// Clock 提供当前时间，测试中可替换
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Config 定义应用启动配置
type Config struct {
	// Sim 模拟配置，为 nil 时使用默认配置
	Sim *config.SimConfig
	// Verbose 启用详细日志输出
	Verbose bool
	// Engine 物理引擎，为 nil 时使用 Chipmunk
	Engine physics.Engine
	// Clock 时钟，为 nil 时使用系统时间
	Clock Clock
}

// App 是模拟程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scene        *scenes.SimulationScene
	canvas       *render.EbitenCanvas
	clock        Clock
	verbose      bool

	width, height int

	lastTick time.Time
	ticked   bool
	drawErr  error // Draw 无法返回错误，留到下一次 Update 返回
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	simCfg := cfg.Sim
	if simCfg == nil {
		simCfg = config.DefaultSimConfig()
	}
	if err := simCfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}

	engine := cfg.Engine
	if engine == nil {
		engine = physics.NewChipmunkEngine()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}

	scene, err := scenes.NewSimulationScene(engine, simCfg)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	log.Printf("[App] Window %dx%d, viewport scale=%.1f height=%.1f",
		simCfg.Window.Width, simCfg.Window.Height, simCfg.Viewport.Scale, simCfg.Viewport.Height)

	return &App{
		sceneManager: sceneManager,
		scene:        scene,
		canvas:       render.NewEbitenCanvas(nil),
		clock:        clock,
		verbose:      cfg.Verbose,
		width:        simCfg.Window.Width,
		height:       simCfg.Window.Height,
	}, nil
}

// Update 更新模拟逻辑
// 每个 tick 调用一次，时间步取距上一次 Update 的实际经过时间，第一帧为 0
func (a *App) Update() error {
	if a.drawErr != nil {
		return fmt.Errorf("frame draw failed: %w", a.drawErr)
	}

	return a.sceneManager.Update(a.tick())
}

// tick 返回距上次调用经过的秒数
func (a *App) tick() float64 {
	now := a.clock.Now()
	if !a.ticked {
		a.ticked = true
		a.lastTick = now
		return 0
	}
	dt := now.Sub(a.lastTick).Seconds()
	a.lastTick = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.canvas.Reset(screen)
	a.DrawTo(a.canvas)
}

// DrawTo 在给定画布上绘制当前场景
//
// 出错后不再绘制，错误由下一次 Update 返回并终止游戏循环。
func (a *App) DrawTo(canvas render.Canvas) {
	if a.drawErr != nil {
		return
	}
	if err := a.sceneManager.Draw(canvas); err != nil {
		log.Printf("[App] Draw failed: %v", err)
		a.drawErr = err
	}
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Scene 返回当前模拟场景
func (a *App) Scene() *scenes.SimulationScene {
	return a.scene
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Run 创建窗口并运行游戏循环，直到窗口关闭或出现错误
func Run(cfg Config) error {
	gameApp, err := NewApp(cfg)
	if err != nil {
		return err
	}

	simCfg := cfg.Sim
	if simCfg == nil {
		simCfg = config.DefaultSimConfig()
	}
	ebiten.SetWindowSize(simCfg.Window.Width, simCfg.Window.Height)
	ebiten.SetWindowTitle(simCfg.Window.Title)

	log.Printf("[App] Starting %s", simCfg.Window.AppID)
	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
