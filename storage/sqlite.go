package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"emg/device"

	_ "github.com/mattn/go-sqlite3"
)

// writeDB 写列式二进制表。
// 每次重复一个独立的 SQLite 文件：recording 表保存标识元数据，
// samples 表按采样序号存放各通道读数，可以按通道与采样序号直接寻址。
func writeDB(path string, md Metadata, samples []device.Sample) error {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return fmt.Errorf("打开数据库失败：%w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1) // SQLite 同一时刻只允许一个写入方

	labels := channelLabels(md.ChannelCount)

	columns := make([]string, len(labels))
	for i, label := range labels {
		columns[i] = label + " REAL NOT NULL"
	}

	schema := fmt.Sprintf(`
CREATE TABLE recording (
  subject_id TEXT NOT NULL,
  date TEXT NOT NULL,
  movement_id INTEGER NOT NULL,
  repetition INTEGER NOT NULL,
  sample_rate INTEGER NOT NULL,
  channel_count INTEGER NOT NULL,
  session_id TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

CREATE TABLE samples (
  sample_index INTEGER PRIMARY KEY,
  %s
);
`, strings.Join(columns, ",\n  "))

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("初始化表结构失败：%w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO recording (subject_id, date, movement_id, repetition, sample_rate, channel_count, session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, md.SubjectID, md.DateString, md.MovementID, md.Repetition, md.SampleRate, md.ChannelCount, md.SessionID, time.Now().Unix()); err != nil {
		return fmt.Errorf("写入元数据失败：%w", err)
	}

	placeholders := make([]string, md.ChannelCount+1)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO samples (sample_index, %s) VALUES (%s)",
		strings.Join(labels, ", "), strings.Join(placeholders, ", "))

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("开启事务失败：%w", err)
	}

	stmt, err := tx.Prepare(insert)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("准备插入语句失败：%w", err)
	}
	defer stmt.Close()

	args := make([]any, md.ChannelCount+1)
	for i, sample := range samples {
		args[0] = i
		for ch, v := range sample {
			args[ch+1] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("插入第 %d 个采样失败：%w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败：%w", err)
	}

	return nil
}

// LoadDB 读取列式二进制表，返回采样矩阵（行序即采样序）
func LoadDB(path string) ([][]float64, error) {
	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败：%w", err)
	}
	defer db.Close()

	var channelCount int
	if err := db.QueryRow("SELECT channel_count FROM recording").Scan(&channelCount); err != nil {
		return nil, fmt.Errorf("读取元数据失败：%w", err)
	}

	labels := channelLabels(channelCount)
	query := fmt.Sprintf("SELECT %s FROM samples ORDER BY sample_index", strings.Join(labels, ", "))

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("查询采样数据失败：%w", err)
	}
	defer rows.Close()

	var data [][]float64
	dest := make([]any, channelCount)
	for rows.Next() {
		row := make([]float64, channelCount)
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("读取采样行失败：%w", err)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历采样数据失败：%w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("文件 %s 中没有采样数据", path)
	}

	return data, nil
}

// LoadRecordingInfo 读取列式文件中的标识元数据
func LoadRecordingInfo(path string) (*Metadata, error) {
	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败：%w", err)
	}
	defer db.Close()

	var md Metadata
	err = db.QueryRow(`
		SELECT subject_id, date, movement_id, repetition, sample_rate, channel_count, session_id
		FROM recording
	`).Scan(&md.SubjectID, &md.DateString, &md.MovementID, &md.Repetition, &md.SampleRate, &md.ChannelCount, &md.SessionID)
	if err != nil {
		return nil, fmt.Errorf("读取元数据失败：%w", err)
	}

	return &md, nil
}
