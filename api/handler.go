package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"emg/define"
	"emg/session"
	"emg/storage"

	"github.com/gin-gonic/gin"
)

// Server 查看与监视服务
type Server struct {
	outputDir string
	monitor   *session.Monitor
	startTime time.Time
}

// NewServer 创建查看服务实例；monitor 为 nil 时不提供实时监视端点
func NewServer(outputDir string, monitor *session.Monitor) *Server {
	return &Server{
		outputDir: outputDir,
		monitor:   monitor,
		startTime: time.Now(),
	}
}

// 健康检查处理函数
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, define.ApiResponse{
		Status:  "success",
		Message: "EMG Recording Service is running",
		Data: map[string]any{
			"timestamp": time.Now(),
			"outputDir": s.outputDir,
			"uptime":    time.Since(s.startTime).String(),
		},
	})
}

// 获取记录列表处理函数
func (s *Server) handleRecordings(c *gin.Context) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, define.ApiResponse{
			Status: "error",
			Error:  "读取输出目录失败：" + err.Error(),
		})
		return
	}

	recordings := make([]RecordingInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".csv" && ext != ".db" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		recordings = append(recordings, RecordingInfo{
			Name:    entry.Name(),
			Format:  strings.TrimPrefix(ext, "."),
			Size:    info.Size(),
			ModTime: info.ModTime().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, define.ApiResponse{
		Status: "success",
		Data:   recordings,
	})
}

// 获取单条记录处理函数，支持可选的通道选择
func (s *Server) handleRecording(c *gin.Context) {
	// filepath.Base 防止路径穿越
	name := filepath.Base(c.Param("name"))
	path := filepath.Join(s.outputDir, name)

	var data [][]float64
	var err error
	switch filepath.Ext(name) {
	case ".csv":
		data, err = storage.LoadCSV(path)
	case ".db":
		data, err = storage.LoadDB(path)
	default:
		c.JSON(http.StatusBadRequest, define.ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("不支持的文件格式: %s", name),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, define.ApiResponse{
			Status: "error",
			Error:  "读取记录失败：" + err.Error(),
		})
		return
	}

	channelCount := len(data[0])
	channels := transpose(data)
	labels := make([]string, channelCount)
	for i := range labels {
		labels[i] = fmt.Sprintf("channel_%d", i+1)
	}

	// 可选的单通道选择（1 起始，与文件表头一致）
	if raw := c.Query("channel"); raw != "" {
		ch, err := strconv.Atoi(raw)
		if err != nil || ch < 1 || ch > channelCount {
			c.JSON(http.StatusBadRequest, define.ApiResponse{
				Status: "error",
				Error:  fmt.Sprintf("无效的通道编号 %s，有效范围 1-%d", raw, channelCount),
			})
			return
		}
		channels = channels[ch-1 : ch]
		labels = labels[ch-1 : ch]
	}

	c.JSON(http.StatusOK, define.ApiResponse{
		Status: "success",
		Data: RecordingData{
			Name:         name,
			ChannelCount: channelCount,
			SampleCount:  len(data),
			Labels:       labels,
			Channels:     channels,
		},
	})
}

// 获取记录元数据处理函数（仅列式文件携带元数据）
func (s *Server) handleRecordingInfo(c *gin.Context) {
	name := filepath.Base(c.Param("name"))
	if filepath.Ext(name) != ".db" {
		c.JSON(http.StatusBadRequest, define.ApiResponse{
			Status: "error",
			Error:  "只有列式 .db 文件携带元数据",
		})
		return
	}

	md, err := storage.LoadRecordingInfo(filepath.Join(s.outputDir, name))
	if err != nil {
		c.JSON(http.StatusInternalServerError, define.ApiResponse{
			Status: "error",
			Error:  "读取元数据失败：" + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, define.ApiResponse{
		Status: "success",
		Data:   md,
	})
}

// 实时监视处理函数
func (s *Server) handleLive(c *gin.Context) {
	if s.monitor == nil {
		c.JSON(http.StatusNotFound, define.ApiResponse{
			Status: "error",
			Error:  "实时监视未启用",
		})
		return
	}

	c.JSON(http.StatusOK, define.ApiResponse{
		Status: "success",
		Data:   s.monitor.Snapshot(),
	})
}

// transpose 把采样优先的矩阵转成通道优先
func transpose(data [][]float64) [][]float64 {
	if len(data) == 0 {
		return nil
	}
	channels := make([][]float64, len(data[0]))
	for ch := range channels {
		channels[ch] = make([]float64, len(data))
		for i := range data {
			channels[ch][i] = data[i][ch]
		}
	}
	return channels
}
