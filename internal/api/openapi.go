package api

import (
	"github.com/stahlwerk/meltplan/internal/config"
	"github.com/stahlwerk/meltplan/pkg/openapi"
)

// buildSpec describes the API surface served under the configured base path.
// The document covers the primary operations; list endpoints share the same
// page, page_size, search, and sort query parameters.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec("meltplan", cfg.Version)
	spec.SetDescription("Steel plant production forecast service: ingests plant workbooks and redistributes monthly product group heat targets to steel grades using historical production ratios.")
	spec.AddServer(cfg.API.BasePath)

	registerSchemas(spec)

	listParams := []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-based)", false),
		openapi.QueryParam("page_size", "integer", "Records per page", false),
		openapi.QueryParam("search", "string", "Case-insensitive search", false),
		openapi.QueryParam("sort", "string", "Comma-separated sort fields, prefix with - for descending", false),
	}

	spec.Paths["/groups"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List product groups",
			Tags:       []string{"groups"},
			Parameters: listParams,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of product groups", "ProductGroupPage"),
			},
		},
		Post: &openapi.Operation{
			Summary: "Create a product group",
			Tags:    []string{"groups"},
			RequestBody: &openapi.RequestBody{
				Required: true,
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.SchemaRef("CreateProductGroup")},
				},
			},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created product group", "ProductGroup"),
				409: openapi.ResponseJSON("Duplicate name", "Error"),
			},
		},
	}

	spec.Paths["/groups/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a product group",
			Tags:       []string{"groups"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "string", "Product group UUID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Product group", "ProductGroup"),
				404: openapi.ResponseJSON("Not found", "Error"),
			},
		},
	}

	spec.Paths["/grades"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List steel grades",
			Tags:    []string{"grades"},
			Parameters: append(listParams,
				openapi.QueryParam("group_id", "string", "Filter by product group UUID", false),
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of steel grades", "SteelGradePage"),
			},
		},
		Post: &openapi.Operation{
			Summary: "Create a steel grade",
			Tags:    []string{"grades"},
			RequestBody: &openapi.RequestBody{
				Required: true,
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.SchemaRef("CreateSteelGrade")},
				},
			},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created steel grade", "SteelGrade"),
				404: openapi.ResponseJSON("Unknown product group", "Error"),
				409: openapi.ResponseJSON("Duplicate grade in group", "Error"),
			},
		},
	}

	spec.Paths["/history"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List production history",
			Tags:    []string{"history"},
			Parameters: append(listParams,
				openapi.QueryParam("grade_id", "string", "Filter by steel grade UUID", false),
				openapi.QueryParam("month", "string", "Filter by month label, e.g. Jun 24", false),
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of production records", "ProductionRecordPage"),
			},
		},
	}

	spec.Paths["/schedules"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List daily schedule entries",
			Tags:    []string{"schedules"},
			Parameters: append(listParams,
				openapi.QueryParam("date", "string", "Filter by date (2024-08-30)", false),
				openapi.QueryParam("grade", "string", "Filter by grade name", false),
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of schedule entries", "ScheduleEntryPage"),
			},
		},
	}

	spec.Paths["/forecasts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List stored monthly targets",
			Tags:       []string{"forecasts"},
			Parameters: listParams,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of monthly targets", "MonthlyForecastPage"),
			},
		},
	}

	spec.Paths["/forecasts/{year}/{month}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Compute grade-level forecast",
			Description: "Redistributes each product group's target heats for the month across its steel grades proportionally to historical tonnage.",
			Tags:        []string{"forecasts"},
			Parameters: []*openapi.Parameter{
				openapi.PathParam("year", "integer", "Forecast year"),
				openapi.PathParam("month", "integer", "Forecast month (1-12)"),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Computed forecast", "Forecast"),
				404: openapi.ResponseJSON("No forecast data for month", "Error"),
				409: openapi.ResponseJSON("Group without registered grades", "Error"),
			},
		},
	}

	spec.Paths["/uploads"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List uploads",
			Tags:    []string{"uploads"},
			Parameters: append(listParams,
				openapi.QueryParam("kind", "string", "Filter by workbook kind", false),
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of uploads", "UploadPage"),
			},
		},
	}

	for path, summary := range map[string]string{
		"/uploads/daily-schedule":     "Ingest the daily charge schedule workbook",
		"/uploads/monthly-forecast":   "Ingest the monthly product group forecast workbook",
		"/uploads/production-history": "Ingest the grade production history workbook",
	} {
		spec.Paths[path] = &openapi.PathItem{
			Post: &openapi.Operation{
				Summary: summary,
				Tags:    []string{"uploads"},
				RequestBody: &openapi.RequestBody{
					Required: true,
					Content: map[string]*openapi.MediaType{
						"multipart/form-data": {Schema: &openapi.Schema{
							Type: "object",
							Properties: map[string]*openapi.Schema{
								"file": {Type: "string", Format: "binary"},
							},
							Required: []string{"file"},
						}},
					},
				},
				Responses: map[int]*openapi.Response{
					201: openapi.ResponseJSON("Accepted upload", "Upload"),
					400: openapi.ResponseJSON("Unparseable workbook", "Error"),
				},
			},
		}
	}

	spec.Paths["/uploads/{id}/download"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Download the archived workbook",
			Tags:       []string{"uploads"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "string", "Upload UUID")},
			Responses: map[int]*openapi.Response{
				200: {Description: "Workbook stream"},
				404: openapi.ResponseJSON("Not found", "Error"),
			},
		},
	}

	return spec
}

func registerSchemas(spec *openapi.Spec) {
	uuidSchema := &openapi.Schema{Type: "string", Format: "uuid"}

	spec.Components.Schemas["Error"] = &openapi.Schema{
		Type:       "object",
		Properties: map[string]*openapi.Schema{"error": {Type: "string"}},
	}

	spec.Components.Schemas["ProductGroup"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":         uuidSchema,
			"name":       {Type: "string"},
			"created_at": {Type: "string", Format: "date-time"},
		},
	}

	spec.Components.Schemas["CreateProductGroup"] = &openapi.Schema{
		Type:       "object",
		Properties: map[string]*openapi.Schema{"name": {Type: "string"}},
		Required:   []string{"name"},
	}

	spec.Components.Schemas["SteelGrade"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":               uuidSchema,
			"name":             {Type: "string"},
			"product_group_id": uuidSchema,
			"product_group":    {Type: "string"},
			"created_at":       {Type: "string", Format: "date-time"},
		},
	}

	spec.Components.Schemas["CreateSteelGrade"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name":             {Type: "string"},
			"product_group_id": uuidSchema,
		},
		Required: []string{"name", "product_group_id"},
	}

	spec.Components.Schemas["ProductionRecord"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":             uuidSchema,
			"steel_grade_id": uuidSchema,
			"grade":          {Type: "string"},
			"product_group":  {Type: "string"},
			"month":          {Type: "string", Format: "date"},
			"tons":           {Type: "string", Description: "Decimal tonnage"},
			"created_at":     {Type: "string", Format: "date-time"},
		},
	}

	spec.Components.Schemas["ScheduleEntry"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":             uuidSchema,
			"date":           {Type: "string", Format: "date"},
			"start_time":     {Type: "string"},
			"steel_grade_id": uuidSchema,
			"grade":          {Type: "string"},
			"product_group":  {Type: "string"},
			"mould_size":     {Type: "string"},
			"created_at":     {Type: "string", Format: "date-time"},
		},
	}

	spec.Components.Schemas["MonthlyForecast"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":               uuidSchema,
			"product_group_id": uuidSchema,
			"product_group":    {Type: "string"},
			"month":            {Type: "string", Format: "date"},
			"heats":            {Type: "integer"},
			"created_at":       {Type: "string", Format: "date-time"},
		},
	}

	spec.Components.Schemas["GradeForecast"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"grade":         {Type: "string"},
			"product_group": {Type: "string"},
			"heats":         {Type: "integer"},
		},
	}

	spec.Components.Schemas["Forecast"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"month":     {Type: "string", Description: "Month label, e.g. September 2024"},
			"forecasts": {Type: "array", Items: openapi.SchemaRef("GradeForecast")},
		},
	}

	spec.Components.Schemas["Upload"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":                uuidSchema,
			"kind":              {Type: "string"},
			"filename":          {Type: "string"},
			"content_type":      {Type: "string"},
			"size_bytes":        {Type: "integer"},
			"records_processed": {Type: "integer"},
			"storage_key":       {Type: "string"},
			"uploaded_at":       {Type: "string", Format: "date-time"},
		},
	}

	for name, item := range map[string]string{
		"ProductGroupPage":     "ProductGroup",
		"SteelGradePage":       "SteelGrade",
		"ProductionRecordPage": "ProductionRecord",
		"ScheduleEntryPage":    "ScheduleEntry",
		"MonthlyForecastPage":  "MonthlyForecast",
		"UploadPage":           "Upload",
	} {
		spec.Components.Schemas[name] = pageSchema(item)
	}
}

func pageSchema(item string) *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef(item)},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	}
}
