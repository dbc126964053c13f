package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/seed"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// 读取配置文件，作为命令行参数的默认值
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var op int
	var employees int
	var shifts int
	var randSeed int64
	var week string
	var csvPath string
	var output string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 生成排班建议请求, 2: 生成校验/成本请求, 3: 用 CSV 中的员工生成排班建议请求)")
	flag.IntVar(&employees, "employees", cfg.Seed.Employees, "员工数量")
	flag.IntVar(&shifts, "shifts", cfg.Seed.Shifts, "班次数量上限")
	flag.Int64Var(&randSeed, "seed", cfg.Seed.RandSeed, "随机数种子，相同的种子生成相同的数据")
	flag.StringVar(&week, "week", time.Now().UTC().Format(domain.DateLayout), "班次所在的周（该周任意一天）")
	flag.StringVar(&csvPath, "csv", "", "员工表 CSV 文件路径")
	flag.StringVar(&output, "o", "", "输出文件路径，为空时输出到标准输出")
	flag.Parse()

	weekStart, err := time.Parse(domain.DateLayout, week)
	if err != nil {
		logger.Error("日期格式错误", slog.String("week", week))
		os.Exit(1)
	}
	if employees <= 0 || shifts <= 0 {
		logger.Error("请输入合法的员工数量和班次数量")
		os.Exit(1)
	}

	g := seed.NewGenerator(randSeed)

	// 执行操作
	var data any
	switch op {
	case 0:
		logger.Error("未指定操作")
		os.Exit(1)
	case 1:
		data, err = g.SuggestRequest(weekStart, employees, shifts)
	case 2:
		data, err = g.ScheduleRequest(weekStart, employees, shifts)
	case 3:
		if csvPath == "" {
			logger.Error("请指定员工表 CSV 文件")
			os.Exit(1)
		}
		file, openErr := os.Open(csvPath)
		if openErr != nil {
			logger.Error("打开文件失败", slog.String("error", openErr.Error()))
			os.Exit(1)
		}
		defer file.Close()

		req, genErr := g.SuggestRequest(weekStart, 0, shifts)
		if genErr != nil {
			logger.Error("无法生成班次", slog.String("error", genErr.Error()))
			os.Exit(1)
		}
		req.Employees, err = seed.LoadEmployeesCSV(file)
		data = req
	default:
		logger.Error("指定的操作非法")
		os.Exit(1)
	}
	if err != nil {
		logger.Error("无法生成数据", slog.String("error", err.Error()))
		os.Exit(1)
	}

	out := os.Stdout
	if output != "" {
		out, err = os.Create(output)
		if err != nil {
			logger.Error("无法创建输出文件", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer out.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		logger.Error("无法写入数据", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("生成数据成功", slog.Int("op", op), slog.Int64("seed", randSeed))
}
