package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"emg/device"
)

// writeCSV 写行式文本表：首行为通道标签，之后每行一个采样，行序即采样序
func writeCSV(path string, md Metadata, samples []device.Sample) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("创建文件失败：%w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(channelLabels(md.ChannelCount)); err != nil {
		return fmt.Errorf("写入表头失败：%w", err)
	}

	row := make([]string, md.ChannelCount)
	for i, sample := range samples {
		for ch, v := range sample {
			row[ch] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("写入第 %d 行失败：%w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("刷新文件失败：%w", err)
	}

	return nil
}

// LoadCSV 读取行式文本表，返回采样矩阵（行序即采样序）
func LoadCSV(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败：%w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 CSV 失败：%w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("文件 %s 中没有采样数据", path)
	}

	// 跳过表头行
	data := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for ch, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("第 %d 行第 %d 列的值 %q 无效：%w", i+1, ch+1, field, err)
			}
			row[ch] = v
		}
		data = append(data, row)
	}

	return data, nil
}
