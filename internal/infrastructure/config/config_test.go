package config

import (
	"strings"
	"testing"
)

// TestDatabaseDSN 测试MySQL连接串拼装
func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:      "127.0.0.1",
		Port:      3306,
		User:      "bookshop",
		Password:  "secret",
		DBName:    "bookshop",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Asia/Shanghai",
	}

	dsn := d.DSN()

	if !strings.HasPrefix(dsn, "bookshop:secret@tcp(127.0.0.1:3306)/bookshop?") {
		t.Errorf("DSN前缀错误: %s", dsn)
	}

	// loc必须URL编码,否则驱动解析失败
	if !strings.Contains(dsn, "loc=Asia%2FShanghai") {
		t.Errorf("loc应URL编码: %s", dsn)
	}

	// 仓储层用RowsAffected==0判定记录不存在,
	// 必须按命中行数统计,否则幂等更新会被误判为未命中
	if !strings.Contains(dsn, "clientFoundRows=true") {
		t.Errorf("DSN应携带clientFoundRows=true: %s", dsn)
	}
}
