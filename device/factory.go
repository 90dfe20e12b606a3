package device

import (
	"fmt"

	"emg/define"
)

// SourceFactory 数据源工厂
type SourceFactory struct {
	constructors map[string]func(cfg *define.SessionConfig) (Source, error)
}

var defaultFactory = &SourceFactory{
	constructors: make(map[string]func(cfg *define.SessionConfig) (Source, error)),
}

// RegisterSourceType 注册数据源型号
func RegisterSourceType(modelName string, constructor func(cfg *define.SessionConfig) (Source, error)) {
	defaultFactory.constructors[modelName] = constructor
}

// CreateSource 创建数据源实例
func CreateSource(modelName string, cfg *define.SessionConfig) (Source, error) {
	constructor, ok := defaultFactory.constructors[modelName]
	if !ok {
		return nil, fmt.Errorf("未知的设备型号: %s", modelName)
	}
	return constructor(cfg)
}

// GetSupportedModels 获取支持的设备型号列表
func GetSupportedModels() []string {
	models := make([]string, 0, len(defaultFactory.constructors))
	for model := range defaultFactory.constructors {
		models = append(models, model)
	}
	return models
}
