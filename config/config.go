package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"emg/define"
)

// LoadConfig 从文件加载会话配置
func LoadConfig(configPath string) (*define.SessionConfig, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("打开配置文件失败：%w", err)
	}
	defer file.Close()

	var cfg define.SessionConfig
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败：%w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// SaveConfig 保存会话配置到文件
func SaveConfig(cfg *define.SessionConfig, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("创建配置文件失败：%w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("保存配置文件失败：%w", err)
	}

	return nil
}

// ApplyDefaults 填充缺失的配置项
func ApplyDefaults(cfg *define.SessionConfig) {
	if cfg.DateString == "" {
		cfg.DateString = time.Now().Format("02-01")
	}
	if cfg.Repetitions == 0 {
		cfg.Repetitions = 3
	}
	if cfg.PerformTime == 0 {
		cfg.PerformTime = 2
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 2000
	}
	if cfg.ChannelCount == 0 {
		cfg.ChannelCount = 32
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./emg_data"
	}
	if cfg.DeviceModel == "" {
		cfg.DeviceModel = define.DEVICE_MODEL_SYNCSTATION
	}
	if cfg.DeviceAddr == "" {
		cfg.DeviceAddr = "192.168.76.1:54320"
	}
	if cfg.MonitorPort == "" {
		cfg.MonitorPort = "9099"
	}
}

// GetDefaultConfig 获取默认会话配置
func GetDefaultConfig() *define.SessionConfig {
	cfg := &define.SessionConfig{
		SubjectID:   "000",
		LibraryPath: "./movement_library/EA/movements.yaml",
	}
	ApplyDefaults(cfg)
	return cfg
}

// Validate 校验会话配置，任何一项不合法都在采集开始前报错
func Validate(cfg *define.SessionConfig) error {
	if cfg.SubjectID == "" {
		return fmt.Errorf("缺少受试者编号")
	}
	// 日期字符串进入输出文件名，格式错误在采集前报出
	if _, err := time.Parse("02-01", cfg.DateString); err != nil {
		return fmt.Errorf("日期格式必须为 dd-mm，当前为 %q", cfg.DateString)
	}
	if cfg.Repetitions <= 0 {
		return fmt.Errorf("重复次数必须大于 0，当前为 %d", cfg.Repetitions)
	}
	if cfg.PerformTime <= 0 {
		return fmt.Errorf("动作时长必须大于 0，当前为 %v", cfg.PerformTime)
	}
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("采样率必须大于 0，当前为 %d", cfg.SampleRate)
	}
	if cfg.ChannelCount <= 0 {
		return fmt.Errorf("通道数必须大于 0，当前为 %d", cfg.ChannelCount)
	}
	if len(cfg.Movements) == 0 {
		return fmt.Errorf("动作列表为空，请检查动作库 %s", cfg.LibraryPath)
	}

	seen := make(map[int]bool)
	for _, m := range cfg.Movements {
		if m.ID <= 0 {
			return fmt.Errorf("无效的动作编号 %d (%s)", m.ID, m.Name)
		}
		if seen[m.ID] {
			return fmt.Errorf("动作编号 %d 重复", m.ID)
		}
		seen[m.ID] = true
	}

	return nil
}
