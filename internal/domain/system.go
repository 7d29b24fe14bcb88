package domain

import "time"

type SysConfig struct {
	ID        int64     `json:"id,string" form:"id"`
	Sort      int       `json:"sort" form:"sort"`
	Type      string    `gorm:"index" json:"type" form:"type"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Value     string    `json:"value" form:"value"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysConfig) TableName() string {
	return "sys_config"
}

// AuthLog records one authentication attempt for auditing. Rows are purged by
// the daily retention job.
type AuthLog struct {
	ID        int64     `json:"id,string"`
	Email     string    `gorm:"index" json:"email"`
	ClientIP  string    `json:"client_ip"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (AuthLog) TableName() string {
	return "auth_log"
}
