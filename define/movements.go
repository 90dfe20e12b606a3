package define

import "fmt"

// 设备型号
const (
	DEVICE_MODEL_SYNCSTATION = "syncstation"
	DEVICE_MODEL_SIMULATOR   = "simulator"
)

// Movement 一个受试动作：编号加上展示给受试者的提示图
type Movement struct {
	ID   int    `yaml:"id" json:"id"`     // 动作编号，用于文件命名和标签
	Name string `yaml:"name" json:"name"` // 动作名称，例如 "Index_Flexion"
	Cue  string `yaml:"cue" json:"cue"`   // 提示图路径
}

func (m Movement) String() string {
	return fmt.Sprintf("M%d (%s)", m.ID, m.Name)
}

// MovementLibrary 动作库：会话配置时加载，之后只读
type MovementLibrary struct {
	Name      string     `yaml:"name"`
	Movements []Movement `yaml:"movements"`
}
