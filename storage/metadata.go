package storage

import "fmt"

// Metadata 一次完整重复的标识信息，用于文件命名和落盘时的元数据记录
type Metadata struct {
	SubjectID    string `json:"subjectId"`
	DateString   string `json:"date"` // dd-mm
	MovementID   int    `json:"movementId"`
	Repetition   int    `json:"repetition"`
	SampleRate   int    `json:"sampleRate"`
	ChannelCount int    `json:"channelCount"`
	SessionID    string `json:"sessionId"` // 本次会话运行的 UUID
}

// Stem 由受试者、日期、动作、重复次序唯一确定的文件名主干。
// 两种格式共用同一主干，各自追加扩展名。
func (m Metadata) Stem() string {
	return fmt.Sprintf("emg_data_ID%s_%s_M%dR%d", m.SubjectID, m.DateString, m.MovementID, m.Repetition)
}

// CSVName 行式文本表的文件名
func (m Metadata) CSVName() string { return m.Stem() + ".csv" }

// DBName 列式二进制表的文件名
func (m Metadata) DBName() string { return m.Stem() + ".db" }

func (m Metadata) String() string {
	return fmt.Sprintf("受试者 %s 动作 M%d 第 %d 次", m.SubjectID, m.MovementID, m.Repetition)
}
