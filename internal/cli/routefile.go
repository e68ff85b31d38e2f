package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fake-oleg29/train-schedule-cli/internal/validate"
)

// routeFile is the YAML shape of a route definition:
//
//	trainId: 4f2d...
//	departureDateTime: 2026-09-01T08:00
//	stops:
//	  - stationName: Kyiv
//	    arrivalDateTime: 2026-09-01T08:00
//	    departureDateTime: 2026-09-01T08:05
//	    priceFromStart: 0
//	  - stationName: Lviv
//	    arrivalDateTime: 2026-09-01T13:00
//	    departureDateTime: 2026-09-01T13:10
//	    priceFromStart: 450
//
// stopNumber may be omitted; stops are numbered in file order.
type routeFile struct {
	TrainID           string         `yaml:"trainId"`
	DepartureDateTime string         `yaml:"departureDateTime"`
	Stops             []stopFileStop `yaml:"stops"`
}

type stopFileStop struct {
	StationName       string  `yaml:"stationName"`
	ArrivalDateTime   string  `yaml:"arrivalDateTime"`
	DepartureDateTime string  `yaml:"departureDateTime"`
	StopNumber        int     `yaml:"stopNumber"`
	PriceFromStart    float64 `yaml:"priceFromStart"`
}

// loadRouteForm reads a route definition and maps it onto the authoring
// form, applying the same pre-validation normalization the interactive form
// performs: local datetimes become absolute timestamps and missing stop
// numbers are assigned from file order.
func loadRouteForm(path string) (validate.RouteForm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return validate.RouteForm{}, fmt.Errorf("read route file: %w", err)
	}

	var file routeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return validate.RouteForm{}, fmt.Errorf("parse route file: %w", err)
	}

	form := validate.RouteForm{
		TrainID:           file.TrainID,
		DepartureDateTime: validate.LocalToISO(file.DepartureDateTime),
		Stops:             make([]validate.StopForm, len(file.Stops)),
	}
	for i, stop := range file.Stops {
		number := stop.StopNumber
		if number == 0 {
			number = i + 1
		}
		form.Stops[i] = validate.StopForm{
			StationName:       stop.StationName,
			ArrivalDateTime:   validate.LocalToISO(stop.ArrivalDateTime),
			DepartureDateTime: validate.LocalToISO(stop.DepartureDateTime),
			StopNumber:        number,
			PriceFromStart:    stop.PriceFromStart,
		}
	}
	return form, nil
}
