package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRouteFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "route.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRouteForm(t *testing.T) {
	path := writeRouteFile(t, `
trainId: 6f1b24f5-95cb-4bfa-9204-7c4a6f0c2c55
departureDateTime: 2026-09-01T08:00
stops:
  - stationName: Kyiv
    arrivalDateTime: 2026-09-01T08:00
    departureDateTime: 2026-09-01T08:05
    priceFromStart: 0
  - stationName: Lviv
    arrivalDateTime: 2026-09-01T13:00
    departureDateTime: 2026-09-01T13:10
    priceFromStart: 450
`)

	form, err := loadRouteForm(path)

	require.NoError(t, err)
	assert.Equal(t, "6f1b24f5-95cb-4bfa-9204-7c4a6f0c2c55", form.TrainID)

	// Local datetimes are normalized to RFC 3339 UTC before validation.
	departure, parseErr := time.ParseInLocation("2006-01-02T15:04", "2026-09-01T08:00", time.Local)
	require.NoError(t, parseErr)
	assert.Equal(t, departure.UTC().Format(time.RFC3339), form.DepartureDateTime)

	require.Len(t, form.Stops, 2)
	assert.Equal(t, "Kyiv", form.Stops[0].StationName)
	assert.Equal(t, 450.0, form.Stops[1].PriceFromStart)

	// Stop numbers omitted in the file come from file order.
	assert.Equal(t, 1, form.Stops[0].StopNumber)
	assert.Equal(t, 2, form.Stops[1].StopNumber)

	_, issues := form.Validate()
	assert.True(t, issues.Empty())
}

func TestLoadRouteForm_explicitStopNumbers(t *testing.T) {
	path := writeRouteFile(t, `
trainId: 6f1b24f5-95cb-4bfa-9204-7c4a6f0c2c55
departureDateTime: 2026-09-01T08:00
stops:
  - stationName: Lviv
    arrivalDateTime: 2026-09-01T13:00
    departureDateTime: 2026-09-01T13:10
    stopNumber: 2
    priceFromStart: 450
  - stationName: Kyiv
    arrivalDateTime: 2026-09-01T08:00
    departureDateTime: 2026-09-01T08:05
    stopNumber: 1
    priceFromStart: 0
`)

	form, err := loadRouteForm(path)

	require.NoError(t, err)
	assert.Equal(t, 2, form.Stops[0].StopNumber, "explicit numbering wins over file order")
	assert.Equal(t, 1, form.Stops[1].StopNumber)
}

func TestLoadRouteForm_missingFile(t *testing.T) {
	_, err := loadRouteForm(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRouteForm_badYAML(t *testing.T) {
	path := writeRouteFile(t, "stops: [unclosed")
	_, err := loadRouteForm(path)
	assert.Error(t, err)
}
