package api

import (
	"github.com/stahlwerk/meltplan/internal/forecasts"
	"github.com/stahlwerk/meltplan/internal/grades"
	"github.com/stahlwerk/meltplan/internal/groups"
	"github.com/stahlwerk/meltplan/internal/history"
	"github.com/stahlwerk/meltplan/internal/schedules"
	"github.com/stahlwerk/meltplan/internal/uploads"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Groups    groups.System
	Grades    grades.System
	History   history.System
	Schedules schedules.System
	Forecasts forecasts.System
	Uploads   uploads.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	return &Domain{
		Groups:    groups.New(db, runtime.Logger, runtime.Pagination),
		Grades:    grades.New(db, runtime.Logger, runtime.Pagination),
		History:   history.New(db, runtime.Logger, runtime.Pagination),
		Schedules: schedules.New(db, runtime.Logger, runtime.Pagination),
		Forecasts: forecasts.New(db, runtime.Logger, runtime.Pagination),
		Uploads:   uploads.New(db, runtime.Storage, runtime.Logger, runtime.Pagination),
	}
}
