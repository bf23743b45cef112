package models

import (
	"time"

	"github.com/google/uuid"
)

// Dataset adalah entri registry: id eksternal -> file CSV di disk.
type Dataset struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	FilePath      string    `json:"-"`
	RowCount      int       `json:"rowCount"`
	RejectedCount int       `json:"rejectedCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PaginationQuery struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Sort   string `query:"sort"`
	Search string `query:"search"`
}

type PaginationMeta struct {
	CurrentPage int `json:"currentPage"`
	TotalPage   int `json:"totalPage"`
	TotalData   int `json:"totalData"`
	Limit       int `json:"limit"`
}

type PaginatedResponse struct {
	Data []interface{}  `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
