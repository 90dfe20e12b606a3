package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"emg/api"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 解析命令行参数
	file := flag.String("file", "", "要查看的记录文件 (.csv 或 .db)")
	channel := flag.Int("channel", 0, "只查看单个通道（1 起始，0 表示全部）")
	port := flag.String("port", "9100", "查看服务端口")
	flag.Parse()

	if *file == "" {
		log.Fatal("❌ 请通过 -file 指定要查看的记录文件")
	}

	if _, err := os.Stat(*file); err != nil {
		log.Fatalf("❌ 记录文件不可用: %v", err)
	}

	dir := filepath.Dir(*file)
	name := filepath.Base(*file)

	// 设置 Gin 模式
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

	api.NewServer(dir, nil).SetupRoutes(r)

	url := fmt.Sprintf("http://localhost:%s/api/recordings/%s", *port, name)
	if *channel > 0 {
		url += fmt.Sprintf("?channel=%d", *channel)
	}
	log.Printf("🌐 查看服务运行在 http://localhost:%s", *port)
	log.Printf("📊 记录数据: %s", url)

	if err := r.Run(":" + *port); err != nil {
		log.Fatalf("❌ 查看服务启动失败: %v", err)
	}
}
