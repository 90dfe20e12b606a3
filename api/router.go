package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes 设置 API 路由
func (s *Server) SetupRoutes(r *gin.Engine) {
	r.StaticFile("/", "./static/index.html")
	r.Static("/static", "./static")

	api := r.Group("/api")
	{
		// 记录列表 API
		api.GET("/recordings", s.handleRecordings)

		// 单条记录数据 API（可选 ?channel=N 选择单通道）
		api.GET("/recordings/:name", s.handleRecording)

		// 记录元数据 API
		api.GET("/recordings/:name/info", s.handleRecordingInfo)

		// 实时监视 API
		api.GET("/live", s.handleLive)

		// 健康检查端点
		api.GET("/health", s.handleHealth)
	}
}
