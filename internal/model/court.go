package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Court площадка, которую можно арендовать
type Court struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Sport       string          `json:"sport"`
	HourlyPrice decimal.Decimal `json:"hourly_price"` // цена за час, неотрицательная
	CreatedAt   time.Time       `json:"created_at"`
}

func (c *Court) String() string {
	return c.Name
}
