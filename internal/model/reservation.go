package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// GroupID идентификатор серии фиксированных броней.
// Нулевое значение означает "не входит в серию".
type GroupID struct {
	id  int64
	set bool
}

// NoGroup бронь вне серии
var NoGroup = GroupID{}

// GroupOf серия с указанным id (id лидера серии)
func GroupOf(id int64) GroupID {
	return GroupID{id: id, set: true}
}

// Get возвращает id серии и признак его наличия
func (g GroupID) Get() (int64, bool) {
	return g.id, g.set
}

// IsSet входит ли бронь в серию
func (g GroupID) IsSet() bool {
	return g.set
}

func (g GroupID) String() string {
	if !g.set {
		return "none"
	}
	return strconv.FormatInt(g.id, 10)
}

// MarshalJSON пишет null для брони вне серии
func (g GroupID) MarshalJSON() ([]byte, error) {
	if !g.set {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, g.id, 10), nil
}

func (g *GroupID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*g = NoGroup
		return nil
	}
	id, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*g = GroupOf(id)
	return nil
}

// Reservation конкретная забронированная полоса времени на площадке.
// В хранилище попадает только такая форма; серия хранится как набор
// Reservation с общим GroupID.
type Reservation struct {
	ID              int64           `json:"id"`
	CourtID         int64           `json:"court_id"`
	ClientID        int64           `json:"client_id"`
	Start           time.Time       `json:"start"`
	DurationMinutes int             `json:"duration_minutes"`
	GroupID         GroupID         `json:"group_id"`
	Cost            decimal.Decimal `json:"cost"`
	CreatedAt       time.Time       `json:"created_at"`

	// Дополнительные поля для удобства (не из таблицы reservations)
	Court  *Court  `json:"court,omitempty"`
	Client *Client `json:"client,omitempty"`
}

// End конец брони, полуоткрытый интервал [Start, End)
func (r *Reservation) End() time.Time {
	return r.Start.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// InGroup входит ли бронь в серию
func (r *Reservation) InGroup() bool {
	return r.GroupID.IsSet()
}
