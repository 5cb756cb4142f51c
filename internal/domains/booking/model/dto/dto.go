package dto

import (
	"shareit/internal/domains/booking/model"
	"shareit/shared/failure"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"strconv"
	"time"
)

const (
	MsgInvalidPeriod = "booking start must be before its end"
	MsgPastStart     = "cannot book in the past"
)

type CreateBookingRequest struct {
	ItemID int64  `json:"itemId" validate:"required,gt=0"`
	Start  string `json:"start"  validate:"required"`
	End    string `json:"end"    validate:"required"`
}

// Period parses start and end in the application timezone.
func (r *CreateBookingRequest) Period() (start, end time.Time, err error) {
	start, err = timezone.ParseDefault(r.Start)
	if err != nil {
		return start, end, failure.BadRequestFromString("start must be a date in format yyyy-MM-ddTHH:mm:ss") //nolint:wrapcheck
	}

	end, err = timezone.ParseDefault(r.End)
	if err != nil {
		return start, end, failure.BadRequestFromString("end must be a date in format yyyy-MM-ddTHH:mm:ss") //nolint:wrapcheck
	}

	return start, end, nil
}

// ParseStateParam reads the state query value. An empty value means ALL.
func ParseStateParam(value string) (model.State, error) {
	if value == "" {
		return model.StateAll, nil
	}

	state, ok := model.ParseState(value)
	if !ok {
		return state, failure.BadRequestFromString("Unknown state: " + value) //nolint:wrapcheck
	}

	return state, nil
}

// ParseApprovedParam reads the mandatory approved query value.
func ParseApprovedParam(value string) (bool, error) {
	approved, err := strconv.ParseBool(value)
	if err != nil {
		return false, failure.BadRequestFromString("approved must be true or false") //nolint:wrapcheck
	}

	return approved, nil
}

// CheckPeriod requires start strictly before end and start not before now.
func CheckPeriod(start, end, now time.Time) error {
	if !start.Before(end) {
		return failure.BadRequestFromString(MsgInvalidPeriod) //nolint:wrapcheck
	}

	if start.Before(now) {
		return failure.BadRequestFromString(MsgPastStart) //nolint:wrapcheck
	}

	return nil
}

func (r *CreateBookingRequest) ToModel(bookerID int64, start, end time.Time) model.Booking {
	now := timezone.Now()

	return model.Booking{
		Start:    start,
		End:      end,
		ItemID:   r.ItemID,
		BookerID: bookerID,
		Status:   model.StatusWaiting,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64  `json:"id"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
	Item   Ref    `json:"item"`
	Booker Ref    `json:"booker"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Start = timezone.FormatDefault(model.Start)
	r.End = timezone.FormatDefault(model.End)
	r.Status = string(model.Status)
	r.Item = Ref{ID: model.ItemID, Name: model.ItemName}
	r.Booker = Ref{ID: model.BookerID, Name: model.BookerName}
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// ShortResponse is the reduced booking shown on an owner's item view.
type ShortResponse struct {
	ID       int64  `json:"id"`
	BookerID int64  `json:"bookerId"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

func (r *ShortResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BookerID = model.BookerID
	r.Start = timezone.FormatDefault(model.Start)
	r.End = timezone.FormatDefault(model.End)
}
