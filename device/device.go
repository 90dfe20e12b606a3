package device

// Sample 一个采样时刻的各通道读数（单位 mV），长度等于会话配置的通道数
type Sample []float64

// Source 代表一个拉取式的采样数据源。
// Read 为阻塞调用，按设备自身的节奏逐个返回采样；
// 读取失败直接返回错误，由上层终止会话，不做重试。
type Source interface {
	Connect() error        // 连接设备并发送开始命令
	Read() (Sample, error) // 阻塞读取下一个采样
	Disconnect() error     // 发送停止命令并断开连接
	Model() string         // 获取设备型号
	ChannelCount() int     // 获取通道数
	SampleRate() int       // 获取采样率（Hz）
}
