package booking

// Status is the persisted booking state. Stored as a smallint; translated to
// a display name only on read paths.
type Status int16

const (
	StatusPending   Status = 0
	StatusConfirmed Status = 1
	StatusCanceled  Status = 2
)

const displayUnknown = "unknown"

var displayNames = map[Status]string{
	StatusPending:   "pending",
	StatusConfirmed: "confirmed",
	StatusCanceled:  "canceled",
}

// DisplayName maps a stored status to its wire name. Any value outside the
// known set falls back to "unknown" rather than failing the read.
func (s Status) DisplayName() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return displayUnknown
}

func (s Status) Valid() bool {
	_, ok := displayNames[s]
	return ok
}

// ParseStatus accepts either a display name or its numeric form ("1").
func ParseStatus(raw string) (Status, bool) {
	switch raw {
	case "pending", "0":
		return StatusPending, true
	case "confirmed", "1":
		return StatusConfirmed, true
	case "canceled", "2":
		return StatusCanceled, true
	}
	return 0, false
}
