package validate_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fake-oleg29/train-schedule-cli/internal/validate"
)

func validStop(n int) validate.StopForm {
	return validate.StopForm{
		StationName:       fmt.Sprintf("Station %d", n),
		ArrivalDateTime:   "2026-09-01T08:00:00Z",
		DepartureDateTime: "2026-09-01T08:05:00Z",
		StopNumber:        n,
		PriceFromStart:    float64((n - 1) * 100),
	}
}

func validRouteForm() validate.RouteForm {
	return validate.RouteForm{
		TrainID:           uuid.NewString(),
		DepartureDateTime: "2026-09-01T08:00:00Z",
		Stops:             []validate.StopForm{validStop(1), validStop(2)},
	}
}

// ---- TrainForm ----

func TestTrainForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		form    validate.TrainForm
		field   string
		message string
	}{
		{
			name:    "number required",
			form:    validate.TrainForm{TotalSeats: 40},
			field:   "trainNumber",
			message: "Train number is required",
		},
		{
			name:    "number too short after trim",
			form:    validate.TrainForm{TrainNumber: " 12 ", TotalSeats: 40},
			field:   "trainNumber",
			message: "Train number must be at least 3 characters",
		},
		{
			name:    "seats below minimum",
			form:    validate.TrainForm{TrainNumber: "IC-100", TotalSeats: 0},
			field:   "totalSeats",
			message: "Total seats must be at least 1",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, issues := tc.form.Validate()

			assert.Len(t, issues, 1)
			assert.Equal(t, tc.message, issues.At(validate.Field(tc.field)))
		})
	}

	_, issues := validate.TrainForm{TrainNumber: "IC-100", TotalSeats: 1}.Validate()
	assert.True(t, issues.Empty())
}

// Seats text that does not parse falls back to 0 and fails the minimum-seats
// rule rather than producing a parse error.
func TestTrainForm_unparseableSeats(t *testing.T) {
	form := validate.TrainForm{
		TrainNumber: "IC-100",
		TotalSeats:  validate.IntOr("lots", 0),
	}

	_, issues := form.Validate()

	assert.Equal(t, "Total seats must be at least 1", issues.At(validate.Field("totalSeats")))
}

// ---- RouteForm ----

func TestRouteForm_Validate_valid(t *testing.T) {
	_, issues := validRouteForm().Validate()
	assert.True(t, issues.Empty())
}

func TestRouteForm_Validate_topLevel(t *testing.T) {
	form := validate.RouteForm{TrainID: "not-a-uuid"}

	_, issues := form.Validate()

	assert.Equal(t, "Invalid train ID", issues.At(validate.Field("trainId")))
	assert.Equal(t, "Departure date and time is required", issues.At(validate.Field("departureDateTime")))
	assert.Equal(t, "At least one stop is required", issues.At(validate.Field("stops")))
}

// A failing stop field reports under stops[i].<field>.
func TestRouteForm_Validate_stopPaths(t *testing.T) {
	form := validRouteForm()
	form.Stops[1] = validate.StopForm{StopNumber: 0, PriceFromStart: -1}

	_, issues := form.Validate()

	at := func(field string) string {
		return issues.At(validate.Field("stops"), validate.Index(1), validate.Field(field))
	}
	assert.Equal(t, "Station name is required", at("stationName"))
	assert.Equal(t, "Arrival date and time is required", at("arrivalDateTime"))
	assert.Equal(t, "Departure date and time is required", at("departureDateTime"))
	assert.Equal(t, "Stop number must be at least 1", at("stopNumber"))
	assert.Equal(t, "Price from start must be 0 or greater", at("priceFromStart"))

	// The valid first stop contributed nothing.
	assert.Empty(t, issues.At(validate.Field("stops"), validate.Index(0), validate.Field("stationName")))
}

func TestRouteForm_Validate_pathRendering(t *testing.T) {
	form := validRouteForm()
	form.Stops[1].PriceFromStart = -5

	_, issues := form.Validate()

	require.Len(t, issues, 1)
	assert.Equal(t, "stops[1].priceFromStart", issues[0].Path.String())
}

// ---- stop list editing ----

func TestNewRouteForm(t *testing.T) {
	form := validate.NewRouteForm()

	require.Len(t, form.Stops, 1)
	assert.Equal(t, 1, form.Stops[0].StopNumber)
}

func TestRouteForm_AddStop(t *testing.T) {
	form := validate.NewRouteForm()
	form.AddStop()
	form.AddStop()

	require.Len(t, form.Stops, 3)
	assert.Equal(t, 2, form.Stops[1].StopNumber)
	assert.Equal(t, 3, form.Stops[2].StopNumber)
}

// Removing any stop from any size list leaves the rest renumbered 1..n-1 in
// their original relative order.
func TestRouteForm_RemoveStop_renumbers(t *testing.T) {
	for n := 2; n <= 5; n++ {
		for k := 0; k < n; k++ {
			form := validate.RouteForm{}
			for i := 1; i <= n; i++ {
				form.Stops = append(form.Stops, validStop(i))
			}

			form.RemoveStop(k)

			require.Len(t, form.Stops, n-1, "n=%d k=%d", n, k)
			for j, stop := range form.Stops {
				assert.Equal(t, j+1, stop.StopNumber, "n=%d k=%d j=%d", n, k, j)
			}
			// Relative order survives: the station names skip exactly the
			// removed stop.
			want := 1
			for _, stop := range form.Stops {
				if want == k+1 {
					want++
				}
				assert.Equal(t, fmt.Sprintf("Station %d", want), stop.StationName, "n=%d k=%d", n, k)
				want++
			}
		}
	}
}

func TestRouteForm_RemoveStop_guards(t *testing.T) {
	form := validate.NewRouteForm()
	form.RemoveStop(0)
	assert.Len(t, form.Stops, 1, "last stop is not removable")

	form.AddStop()
	form.RemoveStop(-1)
	form.RemoveStop(5)
	assert.Len(t, form.Stops, 2, "out-of-range indexes are ignored")
}

// ---- normalization ----

func TestLocalToISO(t *testing.T) {
	in, err := time.ParseInLocation("2006-01-02T15:04", "2026-09-01T08:00", time.Local)
	require.NoError(t, err)

	assert.Equal(t, in.UTC().Format(time.RFC3339), validate.LocalToISO("2026-09-01T08:00"))
	assert.Equal(t, in.UTC().Format(time.RFC3339), validate.LocalToISO("2026-09-01 08:00"))

	// Empty and unparseable input pass through so the field rules report it.
	assert.Equal(t, "", validate.LocalToISO(""))
	assert.Equal(t, "next tuesday", validate.LocalToISO("next tuesday"))
}

func TestIntOr_FloatOr(t *testing.T) {
	assert.Equal(t, 42, validate.IntOr("42", 0))
	assert.Equal(t, 0, validate.IntOr("many", 0))
	assert.Equal(t, 1, validate.IntOr("", 1))

	assert.Equal(t, 99.5, validate.FloatOr("99.5", 0))
	assert.Equal(t, 0.0, validate.FloatOr("free", 0))
}
