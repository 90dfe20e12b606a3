package device

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"emg/define"
)

func init() {
	RegisterSourceType(define.DEVICE_MODEL_SIMULATOR, NewSimulator)
}

// Simulator 模拟数据源：按配置的采样率产生合成 EMG 信号，
// 用于没有硬件时的流程验证
type Simulator struct {
	channels   int
	sampleRate int
	interval   time.Duration
	ticker     *time.Ticker
	tick       int
}

func NewSimulator(cfg *define.SessionConfig) (Source, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("无效的采样率: %d", cfg.SampleRate)
	}

	return &Simulator{
		channels:   cfg.ChannelCount,
		sampleRate: cfg.SampleRate,
		interval:   time.Second / time.Duration(cfg.SampleRate),
	}, nil
}

func (s *Simulator) Model() string     { return define.DEVICE_MODEL_SIMULATOR }
func (s *Simulator) ChannelCount() int { return s.channels }
func (s *Simulator) SampleRate() int   { return s.sampleRate }

func (s *Simulator) Connect() error {
	s.ticker = time.NewTicker(s.interval)
	s.tick = 0
	return nil
}

// Read 等待下一个采样节拍并返回合成读数（正弦基波叠加噪声）
func (s *Simulator) Read() (Sample, error) {
	if s.ticker == nil {
		return nil, fmt.Errorf("模拟数据源未连接")
	}

	<-s.ticker.C
	s.tick++

	t := float64(s.tick) / float64(s.sampleRate)
	sample := make(Sample, s.channels)
	for ch := 0; ch < s.channels; ch++ {
		base := math.Sin(2 * math.Pi * (10 + float64(ch)) * t)
		sample[ch] = base + (rand.Float64()-0.5)*0.2
	}

	return sample, nil
}

func (s *Simulator) Disconnect() error {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	return nil
}
