package app

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/guptarohit/asciigraph"

	"github.com/gonewx/superball/pkg/config"
	"github.com/gonewx/superball/pkg/physics"
	"github.com/gonewx/superball/pkg/render"
	"github.com/gonewx/superball/pkg/scenes"
)

// ErrInvalidHeadless 无窗口运行参数无效
var ErrInvalidHeadless = errors.New("invalid headless run")

// HeadlessConfig 无窗口运行参数
type HeadlessConfig struct {
	Sim    *config.SimConfig
	Engine physics.Engine
	Frames int     // 帧数
	Dt     float64 // 每帧固定时间步（秒）
}

// HeadlessResult 无窗口运行结果
type HeadlessResult struct {
	Samples []scenes.Sample // 每帧绘制后的小球状态，第 0 项为初始状态
	Canvas  *render.RecordingCanvas
}

// RunHeadless 以固定时间步运行模拟，不创建窗口
//
// 每帧与窗口模式一致：先推进物理，再绘制到 RecordingCanvas。
func RunHeadless(cfg HeadlessConfig) (*HeadlessResult, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidHeadless, cfg.Frames)
	}
	if cfg.Dt < 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return nil, fmt.Errorf("%w: dt must be a non-negative finite number, got %v", ErrInvalidHeadless, cfg.Dt)
	}

	simCfg := cfg.Sim
	if simCfg == nil {
		simCfg = config.DefaultSimConfig()
	}
	if err := simCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sim config: %w", err)
	}
	engine := cfg.Engine
	if engine == nil {
		engine = physics.NewChipmunkEngine()
	}

	scene, err := scenes.NewSimulationScene(engine, simCfg)
	if err != nil {
		return nil, err
	}

	result := &HeadlessResult{
		Samples: make([]scenes.Sample, 0, cfg.Frames+1),
		Canvas:  &render.RecordingCanvas{},
	}
	initial, err := scene.Sample()
	if err != nil {
		return nil, err
	}
	result.Samples = append(result.Samples, initial)

	for frame := 0; frame < cfg.Frames; frame++ {
		if err := scene.Update(cfg.Dt); err != nil {
			return result, fmt.Errorf("frame %d update: %w", frame, err)
		}
		if err := scene.Draw(result.Canvas); err != nil {
			return result, fmt.Errorf("frame %d draw: %w", frame, err)
		}
		s, err := scene.Sample()
		if err != nil {
			return result, err
		}
		result.Samples = append(result.Samples, s)
	}
	return result, nil
}

// WriteCSV 以 CSV 格式输出采样
func WriteCSV(w io.Writer, samples []scenes.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "x", "y", "vx", "vy", "screen_x", "screen_y"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			formatFloat(s.Time),
			formatFloat(s.Position.X),
			formatFloat(s.Position.Y),
			formatFloat(s.Velocity.X),
			formatFloat(s.Velocity.Y),
			formatFloat(s.Screen.X),
			formatFloat(s.Screen.Y),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PlotHeight 绘制小球高度随时间变化的字符图
func PlotHeight(samples []scenes.Sample) string {
	if len(samples) == 0 {
		return ""
	}
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Position.Y
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("ball height (world units)"),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
