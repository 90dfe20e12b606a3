package api

// RecordingInfo 输出目录中一条已落盘记录的概要
type RecordingInfo struct {
	Name    string `json:"name"`
	Format  string `json:"format"` // "csv" 或 "db"
	Size    int64  `json:"size"`
	ModTime string `json:"modTime"`
}

// RecordingData 单条记录的通道数据。
// Channels 为通道优先的矩阵：Channels[i] 是第 i+1 个通道的完整时间序列。
type RecordingData struct {
	Name         string      `json:"name"`
	ChannelCount int         `json:"channelCount"`
	SampleCount  int         `json:"sampleCount"`
	Labels       []string    `json:"labels"`
	Channels     [][]float64 `json:"channels"`
}
