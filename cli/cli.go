package cli

import (
	"flag"
	"log"
	"os"
	"strconv"

	"emg/config"
	"emg/define"
)

// 解析配置
func ParseConfig() *define.SessionConfig {
	cfg := config.GetDefaultConfig()

	flag.StringVar(&cfg.SubjectID, "subject", cfg.SubjectID, "受试者编号")
	flag.StringVar(&cfg.DateString, "date", cfg.DateString, "日期字符串 (dd-mm)")
	flag.StringVar(&cfg.LibraryPath, "library", cfg.LibraryPath, "动作库 YAML 文件路径")
	flag.IntVar(&cfg.Repetitions, "reps", cfg.Repetitions, "每个动作的重复次数")
	flag.Float64Var(&cfg.PerformTime, "perform-time", cfg.PerformTime, "单次动作采集时长（秒）")
	flag.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "采样率（Hz）")
	flag.IntVar(&cfg.ChannelCount, "channels", cfg.ChannelCount, "EMG 通道数")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "数据输出目录")
	flag.StringVar(&cfg.DeviceModel, "device", cfg.DeviceModel, "采集设备型号 (syncstation/simulator)")
	flag.StringVar(&cfg.DeviceAddr, "device-addr", cfg.DeviceAddr, "设备网络地址 (host:port)")
	flag.BoolVar(&cfg.LivePlot, "live-plot", cfg.LivePlot, "是否启动实时监视服务")
	flag.StringVar(&cfg.MonitorPort, "monitor-port", cfg.MonitorPort, "实时监视服务端口")
	flag.Parse()

	// 环境变量覆盖命令行参数
	if envSubject := os.Getenv("EMG_SUBJECT_ID"); envSubject != "" {
		cfg.SubjectID = envSubject
	}
	if envLibrary := os.Getenv("EMG_LIBRARY_PATH"); envLibrary != "" {
		cfg.LibraryPath = envLibrary
	}
	if envOutput := os.Getenv("EMG_OUTPUT_DIR"); envOutput != "" {
		cfg.OutputDir = envOutput
	}
	if envAddr := os.Getenv("EMG_DEVICE_ADDR"); envAddr != "" {
		cfg.DeviceAddr = envAddr
	}
	if envReps := os.Getenv("EMG_REPETITIONS"); envReps != "" {
		if reps, err := strconv.Atoi(envReps); err == nil {
			cfg.Repetitions = reps
		} else {
			log.Printf("⚠️ 无法解析 EMG_REPETITIONS=%s: %v，使用 %d", envReps, err, cfg.Repetitions)
		}
	}

	// 加载动作库
	library, err := config.LoadLibrary(cfg.LibraryPath)
	if err != nil {
		log.Fatalf("❌ 加载动作库失败: %v", err)
	}
	cfg.Movements = library.Movements
	log.Printf("✅ 动作库 %s 已加载: %d 个动作", library.Name, len(library.Movements))

	return cfg
}
