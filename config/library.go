package config

import (
	"fmt"
	"os"

	"emg/define"

	"gopkg.in/yaml.v3"
)

// LoadLibrary 从 YAML 文件加载动作库
func LoadLibrary(libraryPath string) (*define.MovementLibrary, error) {
	raw, err := os.ReadFile(libraryPath)
	if err != nil {
		return nil, fmt.Errorf("读取动作库文件失败：%w", err)
	}

	var library define.MovementLibrary
	if err := yaml.Unmarshal(raw, &library); err != nil {
		return nil, fmt.Errorf("解析动作库文件失败：%w", err)
	}

	if len(library.Movements) == 0 {
		return nil, fmt.Errorf("动作库 %s 中没有任何动作", libraryPath)
	}

	return &library, nil
}
