package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"SalaryAnalysis/src/config"
	"SalaryAnalysis/src/datasource/file"
	"SalaryAnalysis/src/processor"
	"SalaryAnalysis/src/report"
	"SalaryAnalysis/src/storage"

	"github.com/joho/godotenv"
	"github.com/robfig/cron"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	jsonFolder := flag.String("config", "./config", "配置目录")
	once := flag.Bool("once", false, "run one analysis and exit, ignoring watch and schedule")
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, dcfg, err := config.LoadConfig(*jsonFolder, "config.json", "dataconfig.json")
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// 初始化日志系统
	logger, err := storage.NewLogger(cfg.LogName, cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	a := newApp(cfg, dcfg, logger, os.Stdout)

	code := 0
	if err := a.run(ctx); err != nil {
		logger.Error("analysis failed", zap.Error(err))
		code = 1
	}
	if !*once && (cfg.Watch.Enabled || cfg.Schedule != "") {
		code = 0
		if err := a.serve(ctx); err != nil {
			logger.Error("service stopped", zap.Error(err))
			code = 1
		}
	}

	stop()
	_ = logger.Sync()
	os.Exit(code)
}

// app 串行执行 读取 -> 计算 -> 输出 流程
type app struct {
	cfg      *config.Config
	dcfg     *config.DataConfig
	logger   *zap.Logger
	reporter *report.Reporter
	out      io.Writer

	mu sync.Mutex // one run at a time
}

func newApp(cfg *config.Config, dcfg *config.DataConfig, logger *zap.Logger, out io.Writer) *app {
	return &app{
		cfg:      cfg,
		dcfg:     dcfg,
		logger:   logger,
		reporter: report.NewReporter(cfg.OutputDir, cfg.ReportName, cfg.Locale, logger),
		out:      out,
	}
}

// run 读取两张输入表，计算并输出报告
func (a *app) run(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	t1 := time.Now()
	period := a.cfg.AnalysisPeriod()
	opts := a.cfg.ReadOptions(a.dcfg)
	cols := a.dcfg.Columns()

	var (
		wages     processor.WageTable
		inflation processor.Series
	)
	var g errgroup.Group
	g.Go(func() error {
		path := a.cfg.WagePath()
		df, err := file.ReadTable(path, opts)
		if err != nil {
			return fmt.Errorf("read wages: %w", err)
		}
		wages, err = processor.LoadWages(df, path, cols, period)
		return err
	})
	g.Go(func() error {
		path := a.cfg.InflationPath()
		df, err := file.ReadTable(path, opts)
		if err != nil {
			return fmt.Errorf("read inflation: %w", err)
		}
		inflation, err = processor.LoadInflation(df, path, cols, period)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	analysis, err := processor.NewDataProcessor(wages, inflation, period, a.logger).Analyze(ctx)
	if err != nil {
		return err
	}

	res, err := a.reporter.Render(analysis)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if a.out != nil {
		if err := report.WriteText(a.out, analysis, report.Frames(analysis), res.Narrative); err != nil {
			return fmt.Errorf("print report: %w", err)
		}
	}

	a.logger.Info("数据处理完成",
		zap.String("workbook", res.Workbook),
		zap.Duration("elapsed", time.Since(t1)),
	)
	return nil
}

// serve 根据配置监听数据目录和/或定时重新计算，直到 ctx 结束
func (a *app) serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if a.cfg.Schedule != "" {
		c := cron.New()
		err := c.AddFunc(a.cfg.Schedule, func() {
			a.logger.Info("开始定时计算", zap.String("schedule", a.cfg.Schedule))
			a.rerun(ctx)
		})
		if err != nil {
			return fmt.Errorf("schedule %q: %w", a.cfg.Schedule, err)
		}
		c.Start()
		defer c.Stop()
	}

	if a.cfg.Watch.Enabled {
		monitor, err := file.NewFileMonitor(a.cfg.DataDir, time.Duration(a.cfg.Watch.Debounce), a.cfg.WageFile, a.cfg.InflationFile)
		if err != nil {
			return fmt.Errorf("watch %s: %w", a.cfg.DataDir, err)
		}
		defer monitor.Close()

		g.Go(func() error {
			return monitor.Watch(ctx, func(path string) {
				a.logger.Info("输入文件已更新", zap.String("file", path))
				a.rerun(ctx)
			})
		})
	}

	a.logger.Info("服务已启动，按Ctrl+C退出",
		zap.Bool("watch", a.cfg.Watch.Enabled),
		zap.String("schedule", a.cfg.Schedule),
	)
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})
	return g.Wait()
}

// rerun 失败只记录日志，服务继续运行
func (a *app) rerun(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := a.run(ctx); err != nil {
		a.logger.Error("analysis failed", zap.Error(err))
	}
}
