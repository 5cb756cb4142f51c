package model

import (
	"shareit/shared/model"
	"strings"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldStart     = "start_date"
	FieldEnd       = "end_date"
	FieldItemID    = "item_id"
	FieldBookerID  = "booker_id"
	FieldStatus    = "status"
	FieldItemOwner = "owner_id"

	ItemTableName = "items"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// State selects bookings relative to their status or to the current time.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}

// ParseState accepts a state name in any letter case.
func ParseState(value string) (State, bool) {
	for _, state := range states {
		if strings.EqualFold(string(state), value) {
			return state, true
		}
	}

	return "", false
}

// Booking carries the joined item name, item owner and booker name alongside its own columns.
type Booking struct {
	ID          int64     `db:"id"`
	Start       time.Time `db:"start_date"`
	End         time.Time `db:"end_date"`
	ItemID      int64     `db:"item_id"`
	BookerID    int64     `db:"booker_id"`
	Status      Status    `db:"status"`
	ItemName    string    `db:"item_name"     table:"items" column:"name"`
	ItemOwnerID int64     `db:"item_owner_id" table:"items" column:"owner_id"`
	BookerName  string    `db:"booker_name"   table:"users" column:"name"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN items ON items.id = bookings.item_id JOIN users ON users.id = bookings.booker_id"
}
