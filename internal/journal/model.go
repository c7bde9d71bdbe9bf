// Package journal persists one row per dispatch attempt so operators can
// reconstruct what was sent to the terminal and what came back.
package journal

import (
	"time"

	"gorm.io/datatypes"
)

type DispatchModel struct {
	ID            uint           `gorm:"primaryKey;autoIncrement"`
	TraceID       string         `gorm:"column:trace_id;size:36;uniqueIndex"`
	Action        string         `gorm:"column:action;size:16;index"`
	Symbol        string         `gorm:"column:symbol;size:32;index"`
	OrderType     string         `gorm:"column:order_type;size:24"`
	Volume        float64        `gorm:"column:volume"`
	Success       bool           `gorm:"column:success"`
	Message       string         `gorm:"column:message;type:TEXT"`
	ReturnCode    int            `gorm:"column:return_code"`
	ReturnMessage string         `gorm:"column:return_message;type:TEXT"`
	RequestJSON   datatypes.JSON `gorm:"column:request_json;type:TEXT"`
	ResultJSON    datatypes.JSON `gorm:"column:result_json;type:TEXT"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
}

func (DispatchModel) TableName() string { return "dispatches" }
