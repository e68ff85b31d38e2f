package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fake-oleg29/train-schedule-cli/internal/validate"
)

func TestMapIssues_topLevelFields(t *testing.T) {
	_, issues := validate.LoginForm{}.Validate()

	tree := validate.MapIssues(issues)

	assert.Equal(t, "Email is required", tree.Field("email"))
	assert.Equal(t, "Password is required", tree.Field("password"))
	assert.Empty(t, tree.Field("name"))
	assert.False(t, tree.Empty())
}

func TestMapIssues_stopSubForm(t *testing.T) {
	form := validRouteForm()
	form.Stops[1].StationName = ""
	_, issues := form.Validate()

	tree := validate.MapIssues(issues)

	assert.Equal(t, "Station name is required", tree.Stop(1, "stationName"))
	assert.Empty(t, tree.Stop(0, "stationName"))
}

// The first issue recorded for a path wins; later ones never overwrite it.
func TestMapIssues_firstWins(t *testing.T) {
	issues := validate.Issues{
		{Path: validate.Path{validate.Field("email")}, Message: "first"},
		{Path: validate.Path{validate.Field("email")}, Message: "second"},
	}

	tree := validate.MapIssues(issues)

	assert.Equal(t, "first", tree.Field("email"))
}

// Paths of any depth are retained; nothing is flattened or dropped.
func TestErrorTree_arbitraryDepth(t *testing.T) {
	tree := &validate.ErrorTree{}
	deep := validate.Path{
		validate.Field("legs"), validate.Index(0),
		validate.Field("stops"), validate.Index(2),
		validate.Field("price"),
	}
	tree.Add(deep, "too deep to lose")

	assert.Equal(t, "too deep to lose", tree.At(deep...))
	assert.False(t, tree.Empty())
}

// ---- Clear ----

func TestErrorTree_Clear_exactlyOneEntry(t *testing.T) {
	form := validRouteForm()
	form.Stops[0].StationName = ""
	form.Stops[1].StationName = ""
	_, issues := form.Validate()
	tree := validate.MapIssues(issues)

	tree.Clear(validate.Field("stops"), validate.Index(0), validate.Field("stationName"))

	assert.Empty(t, tree.Stop(0, "stationName"))
	assert.Equal(t, "Station name is required", tree.Stop(1, "stationName"),
		"sibling entries survive a clear")
}

func TestErrorTree_Clear_idempotent(t *testing.T) {
	tree := validate.MapIssues(validate.Issues{
		{Path: validate.Path{validate.Field("email")}, Message: "Email is required"},
	})

	tree.Clear(validate.Field("email"))
	tree.Clear(validate.Field("email"))
	tree.Clear(validate.Field("never-set"))

	assert.True(t, tree.Empty())
}

// ---- Walk ----

func TestErrorTree_Walk_deterministicOrder(t *testing.T) {
	form := validate.RouteForm{TrainID: "bad"}
	form.Stops = []validate.StopForm{
		{StopNumber: 1},
		validStop(2),
	}
	form.Stops[0].StationName = ""
	_, issues := form.Validate()
	tree := validate.MapIssues(issues)

	var paths []string
	tree.Walk(func(path validate.Path, message string) {
		require.NotEmpty(t, message)
		paths = append(paths, path.String())
	})

	// Two identical walks produce the same order.
	var again []string
	tree.Walk(func(path validate.Path, _ string) {
		again = append(again, path.String())
	})
	assert.Equal(t, paths, again)
	assert.Contains(t, paths, "trainId")
	assert.Contains(t, paths, "stops[0].stationName")
}
