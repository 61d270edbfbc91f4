package query

import "github.com/lysyi3m/mt-api/internal/command"

const secondsPerDay = 24 * 3600

// Window is the publication date range of a list videos command.
//
// With HasWindow set, matching rows satisfy To < date_unix < From. Without it,
// HasUpperBound limits rows to date_unix <= UpperBound, and a future query
// carries no date condition at all
type Window struct {
	HasWindow     bool
	From          int64
	To            int64
	HasUpperBound bool
	UpperBound    int64
}

func ComputeWindow(epoch int, mode command.TimeMode, refTime int64) Window {
	if epoch == 0 {
		epoch = 1
	}

	if epoch < 0 {
		if mode == command.TimeModeFuture {
			return Window{}
		}
		return Window{HasUpperBound: true, UpperBound: refTime}
	}

	span := int64(epoch) * secondsPerDay
	w := Window{
		HasWindow: true,
		From:      refTime,
		To:        refTime - span,
	}
	if mode == command.TimeModeFuture {
		w.From += span
	}
	return w
}
