package define

// SessionConfig 一次采集会话的完整配置。
// 会话启动前固定，由 cli 解析后显式传入各个组件，不使用进程级全局状态。
type SessionConfig struct {
	SubjectID    string  `json:"subject_id"`    // 受试者编号，用于输出文件命名
	DateString   string  `json:"date_string"`   // 日期字符串，格式 dd-mm
	LibraryPath  string  `json:"library_path"`  // 动作库 YAML 文件路径
	Repetitions  int     `json:"repetitions"`   // 每个动作的重复次数
	PerformTime  float64 `json:"perform_time"`  // 单次动作采集时长（秒）
	SampleRate   int     `json:"sample_rate"`   // 采样率（Hz）
	ChannelCount int     `json:"channel_count"` // EMG 通道数
	OutputDir    string  `json:"output_dir"`    // 数据输出目录
	DeviceModel  string  `json:"device_model"`  // 采集设备型号（"syncstation" 或 "simulator"）
	DeviceAddr   string  `json:"device_addr"`   // 设备网络地址 (host:port)
	LivePlot     bool    `json:"live_plot"`     // 是否启动实时监视服务
	MonitorPort  string  `json:"monitor_port"`  // 实时监视服务端口

	Movements []Movement `json:"-"` // 从动作库加载的动作列表
}

// API 响应结构体
type ApiResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
