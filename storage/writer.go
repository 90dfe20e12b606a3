package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"emg/device"
)

// Writer 接收一次完整重复的采样数据并落盘
type Writer interface {
	Write(md Metadata, samples []device.Sample) error
}

// Recorder 把每次重复写成两种格式：
// 行式 CSV（表头为通道名，每行一个采样）和列式 SQLite 表。
// 两个文件共用同一文件名主干，已存在的目标路径直接报错，不做覆盖。
type Recorder struct {
	outputDir string
}

func NewRecorder(outputDir string) (*Recorder, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败：%w", err)
	}
	return &Recorder{outputDir: outputDir}, nil
}

func (r *Recorder) Write(md Metadata, samples []device.Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("%s 没有任何采样数据", md)
	}

	// 先整体校验通道宽度，确保失败的试次不留下任何文件
	for i, sample := range samples {
		if len(sample) != md.ChannelCount {
			return fmt.Errorf("%s 第 %d 个采样通道数不一致: %d != %d", md, i, len(sample), md.ChannelCount)
		}
	}

	csvPath := filepath.Join(r.outputDir, md.CSVName())
	dbPath := filepath.Join(r.outputDir, md.DBName())

	// 不做静默覆盖：目标文件已存在说明同一标识被重复采集
	for _, path := range []string{csvPath, dbPath} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s 的输出文件已存在: %s", md, path)
		}
	}

	if err := writeCSV(csvPath, md, samples); err != nil {
		return fmt.Errorf("%s 写入 CSV 失败：%w", md, err)
	}

	if err := writeDB(dbPath, md, samples); err != nil {
		return fmt.Errorf("%s 写入数据库失败：%w", md, err)
	}

	log.Printf("💾 %s 已保存: %d 个采样 -> %s{.csv,.db}", md, len(samples), md.Stem())
	return nil
}

// channelLabels 生成通道标签 channel_1..channel_N
func channelLabels(count int) []string {
	labels := make([]string, count)
	for i := range labels {
		labels[i] = fmt.Sprintf("channel_%d", i+1)
	}
	return labels
}
