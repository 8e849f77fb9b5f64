package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gonewx/superball/pkg/app"
	"github.com/gonewx/superball/pkg/config"
)

var (
	configFile string
	verbose    bool
	frames     int
	dt         float64
	plot       bool
)

// main 注册命令并执行：无子命令时打开窗口运行模拟，simulate 子命令无窗口运行并输出 CSV
// 命令返回错误时以状态码 1 退出
func main() {
	rootCmd := &cobra.Command{
		Use:           "superball",
		Short:         "single bouncing ball rigid-body demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			simCfg, err := config.LoadSimConfig(configFile)
			if err != nil {
				return err
			}
			return app.Run(app.Config{Sim: simCfg, Verbose: verbose})
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "sim config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run the simulation without a window and print samples as CSV",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	simulateCmd.Flags().IntVar(&frames, "frames", 300, "number of frames")
	simulateCmd.Flags().Float64Var(&dt, "dt", 1.0/60.0, "timestep per frame (seconds)")
	simulateCmd.Flags().BoolVar(&plot, "plot", false, "print an ascii plot of the ball height to stderr")

	rootCmd.AddCommand(simulateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if !verbose {
		log.SetOutput(io.Discard)
	}

	simCfg, err := config.LoadSimConfig(configFile)
	if err != nil {
		return err
	}

	res, err := app.RunHeadless(app.HeadlessConfig{Sim: simCfg, Frames: frames, Dt: dt})
	if err != nil {
		return err
	}

	if err := app.WriteCSV(cmd.OutOrStdout(), res.Samples); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if plot {
		fmt.Fprintln(cmd.ErrOrStderr(), app.PlotHeight(res.Samples))
	}
	return nil
}
