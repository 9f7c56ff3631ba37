package api

import (
	"net/http"

	"github.com/stahlwerk/meltplan/internal/config"
	"github.com/stahlwerk/meltplan/pkg/openapi"
	"github.com/stahlwerk/meltplan/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) error {
	routes.Register(
		mux,
		domain.Groups.Handler().Routes(),
		domain.Grades.Handler().Routes(),
		domain.History.Handler().Routes(),
		domain.Schedules.Handler().Routes(),
		domain.Forecasts.Handler().Routes(),
		domain.Uploads.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)

	spec, err := openapi.MarshalJSON(buildSpec(cfg))
	if err != nil {
		return err
	}

	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
	return nil
}
