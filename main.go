package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"emg/api"
	"emg/cli"
	"emg/config"
	"emg/device"
	"emg/session"
	"emg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func printUsage() {
	fmt.Println("EMG Recording Service")
	fmt.Println("Usage:")
	fmt.Println("  -subject string       受试者编号 (default: 000)")
	fmt.Println("  -date string          日期字符串 dd-mm (default: 今天)")
	fmt.Println("  -library string       动作库 YAML 文件路径")
	fmt.Println("  -reps int             每个动作的重复次数 (default: 3)")
	fmt.Println("  -perform-time float   单次动作采集时长，秒 (default: 2)")
	fmt.Println("  -sample-rate int      采样率 Hz (default: 2000)")
	fmt.Println("  -channels int         EMG 通道数 (default: 32)")
	fmt.Println("  -output string        数据输出目录 (default: ./emg_data)")
	fmt.Println("  -device string        采集设备型号 syncstation/simulator")
	fmt.Println("  -device-addr string   设备网络地址 (default: 192.168.76.1:54320)")
	fmt.Println("  -live-plot            启动实时监视服务")
	fmt.Println("  -monitor-port string  实时监视服务端口 (default: 9099)")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  EMG_SUBJECT_ID        受试者编号")
	fmt.Println("  EMG_LIBRARY_PATH      动作库 YAML 文件路径")
	fmt.Println("  EMG_OUTPUT_DIR        数据输出目录")
	fmt.Println("  EMG_DEVICE_ADDR       设备网络地址")
	fmt.Println("  EMG_REPETITIONS       每个动作的重复次数")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  ./emg-recorder -subject 007 -library movement_library/EA/movements.yaml")
	fmt.Println("  ./emg-recorder -device simulator -reps 2 -live-plot")
	fmt.Println("  EMG_SUBJECT_ID=007 ./emg-recorder -library movement_library/EA/movements.yaml")
}

func main() {
	// 检查是否请求帮助
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		return
	}

	// 解析配置
	cfg := cli.ParseConfig()

	// 验证配置
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("❌ 配置不合法: %v", err)
	}

	log.Printf("🔧 会话配置：")
	log.Printf("   - 受试者: %s", cfg.SubjectID)
	log.Printf("   - 日期: %s", cfg.DateString)
	log.Printf("   - 动作数: %d，每个重复 %d 次", len(cfg.Movements), cfg.Repetitions)
	log.Printf("   - 动作时长: %v 秒，采样率: %d Hz，通道数: %d", cfg.PerformTime, cfg.SampleRate, cfg.ChannelCount)
	log.Printf("   - 设备: %s (%s)", cfg.DeviceModel, cfg.DeviceAddr)
	log.Printf("   - 输出目录: %s", cfg.OutputDir)

	// 创建写入器
	recorder, err := storage.NewRecorder(cfg.OutputDir)
	if err != nil {
		log.Fatalf("❌ 初始化输出目录失败: %v", err)
	}

	// 创建数据源
	source, err := device.CreateSource(cfg.DeviceModel, cfg)
	if err != nil {
		log.Fatalf("❌ 创建数据源失败: %v（支持的型号: %v）", err, device.GetSupportedModels())
	}

	if err := source.Connect(); err != nil {
		log.Fatalf("❌ 连接设备失败: %v", err)
	}

	// 可选的实时监视服务
	var monitor *session.Monitor
	if cfg.LivePlot {
		monitor = session.NewMonitor()

		gin.SetMode(gin.ReleaseMode)
		r := gin.Default()
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
		api.NewServer(cfg.OutputDir, monitor).SetupRoutes(r)

		go func() {
			log.Printf("🌐 实时监视服务运行在 http://localhost:%s", cfg.MonitorPort)
			if err := r.Run(":" + cfg.MonitorPort); err != nil {
				log.Printf("❌ 实时监视服务启动失败: %v", err)
			}
		}()
	}

	// 运行会话；无论成败都先发送停止命令并断开设备
	sequencer := session.NewSequencer(cfg, source, recorder, monitor)
	runErr := sequencer.Run()

	if err := source.Disconnect(); err != nil {
		log.Printf("⚠️ 断开设备失败: %v", err)
	}

	if runErr != nil {
		log.Fatalf("❌ 会话中止: %v", runErr)
	}

	log.Printf("✅ 数据采集完成，输出目录: %s", cfg.OutputDir)
}
