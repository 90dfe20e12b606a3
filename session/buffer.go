package session

import (
	"fmt"

	"emg/device"
)

// Buffer 当前重复的采集缓冲区：按到达顺序累积采样，不排序不去重。
// 同一会话内所有采样的通道数必须一致。
type Buffer struct {
	channelCount int
	samples      []device.Sample
}

func NewBuffer(channelCount int) *Buffer {
	return &Buffer{channelCount: channelCount}
}

// Append 追加一个采样，通道数不一致直接报错
func (b *Buffer) Append(sample device.Sample) error {
	if len(sample) != b.channelCount {
		return fmt.Errorf("采样通道数不一致: %d != %d", len(sample), b.channelCount)
	}
	b.samples = append(b.samples, sample)
	return nil
}

// Reset 清空缓冲区，准备下一次重复
func (b *Buffer) Reset() {
	b.samples = b.samples[:0]
}

// Samples 获取已缓冲的采样序列
func (b *Buffer) Samples() []device.Sample {
	return b.samples
}

// Len 获取已缓冲的采样数
func (b *Buffer) Len() int {
	return len(b.samples)
}
