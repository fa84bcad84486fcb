package httpapi

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/citypairs/flight-explorer/internal/charts"
	"github.com/citypairs/flight-explorer/internal/flights"
	"github.com/citypairs/flight-explorer/internal/report"
	"github.com/citypairs/flight-explorer/internal/store"
)

var validate = validator.New()

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *flights.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/cities", func(c *fiber.Ctx) error {
		cities, err := service.Cities()
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{
			"count":  len(cities),
			"cities": cities,
		})
	})

	v1.Get("/records", func(c *fiber.Ctx) error {
		crit, err := bindCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		records, err := service.Records(crit)
		if err != nil {
			return serviceError(err)
		}
		// An empty match is a valid result, not an error.
		return c.JSON(fiber.Map{
			"count":   len(records),
			"records": records,
		})
	})

	v1.Get("/trend", func(c *fiber.Ctx) error {
		crit, err := bindCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if crit.Origin == "" {
			return fiber.NewError(fiber.StatusBadRequest, "origin query parameter is required")
		}

		points, err := service.Trend(crit)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{
			"origin":      crit.Origin,
			"destination": crit.Destination,
			"points":      points,
		})
	})

	v1.Get("/load-factor", func(c *fiber.Ctx) error {
		crit, err := bindCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if crit.Origin == "" {
			return fiber.NewError(fiber.StatusBadRequest, "origin query parameter is required")
		}

		points, err := service.LoadFactor(crit)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{
			"origin":      crit.Origin,
			"destination": crit.Destination,
			"points":      points,
		})
	})

	v1.Get("/distance-load", func(c *fiber.Ctx) error {
		crit, err := bindCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		points, err := service.DistanceLoad(crit)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{
			"count":  len(points),
			"points": points,
		})
	})

	v1.Get("/cities/:city/summary", func(c *fiber.Ctx) error {
		city, err := url.PathUnescape(c.Params("city"))
		if err != nil || city == "" {
			return fiber.NewError(fiber.StatusBadRequest, "invalid city name")
		}

		summary, err := service.CitySummary(city)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(summary)
	})

	v1.Get("/export/summary.xlsx", func(c *fiber.Ctx) error {
		q, err := bindQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summaries, err := service.CitySummaries()
		if err != nil {
			return serviceError(err)
		}
		wb, err := report.BuildSummaryWorkbook(summaries)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build workbook")
		}
		if q.hasFilter() {
			crit, err := q.criteria()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			records, err := service.Records(crit)
			if err != nil {
				return serviceError(err)
			}
			if err := report.AppendRecords(wb, records); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to build workbook")
			}
		}
		buf, err := wb.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to encode workbook")
		}

		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="city_summary.xlsx"`)
		return c.Send(buf.Bytes())
	})

	chartGroup := app.Group("/charts")

	chartGroup.Get("/trend.png", func(c *fiber.Ctx) error {
		crit, err := bindCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if crit.Origin == "" {
			return fiber.NewError(fiber.StatusBadRequest, "origin query parameter is required")
		}

		points, err := service.Trend(crit)
		if err != nil {
			return serviceError(err)
		}
		png, err := charts.TrendLine(points, routeLabel(crit)+" passenger trips")
		if err != nil {
			return serviceError(err)
		}
		return sendPNG(c, png)
	})

	chartGroup.Get("/load-factor.png", func(c *fiber.Ctx) error {
		crit, err := bindCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if crit.Origin == "" {
			return fiber.NewError(fiber.StatusBadRequest, "origin query parameter is required")
		}

		points, err := service.LoadFactor(crit)
		if err != nil {
			return serviceError(err)
		}
		png, err := charts.LoadFactorLine(points, routeLabel(crit)+" load factor")
		if err != nil {
			return serviceError(err)
		}
		return sendPNG(c, png)
	})

	chartGroup.Get("/distance-load.png", func(c *fiber.Ctx) error {
		crit, err := bindCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		points, err := service.DistanceLoad(crit)
		if err != nil {
			return serviceError(err)
		}
		png, err := charts.DistanceScatter(points, routeLabel(crit)+" distance vs load factor")
		if err != nil {
			return serviceError(err)
		}
		return sendPNG(c, png)
	})
}

// filterQuery holds the common filter query parameters.
type filterQuery struct {
	Origin      string
	Destination string
	From        string
	To          string
	Direction   string `validate:"omitempty,oneof=either directed"`
}

func bindQuery(c *fiber.Ctx) (filterQuery, error) {
	q := filterQuery{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		From:        c.Query("from"),
		To:          c.Query("to"),
		Direction:   c.Query("direction"),
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func bindCriteria(c *fiber.Ctx) (flights.Criteria, error) {
	q, err := bindQuery(c)
	if err != nil {
		return flights.Criteria{}, err
	}
	return q.criteria()
}

func (q filterQuery) hasFilter() bool {
	return q.Origin != "" || q.Destination != "" || q.From != "" || q.To != ""
}

func (q filterQuery) criteria() (flights.Criteria, error) {
	crit := flights.Criteria{Direction: flights.Direction(q.Direction)}
	if q.Origin != "" {
		crit.Origin = flights.CanonicalCity(q.Origin)
	}
	if q.Destination != "" {
		crit.Destination = flights.CanonicalCity(q.Destination)
	}
	if q.From != "" {
		p, err := flights.ParsePeriod(q.From)
		if err != nil {
			return crit, err
		}
		crit.From = p
	}
	if q.To != "" {
		p, err := flights.ParsePeriod(q.To)
		if err != nil {
			return crit, err
		}
		crit.To = p
	}
	if !crit.From.IsZero() && !crit.To.IsZero() && crit.To.Before(crit.From) {
		return crit, errors.New("from must not be after to")
	}
	return crit, nil
}

func routeLabel(c flights.Criteria) string {
	switch {
	case c.Origin != "" && c.Destination != "":
		return c.Origin + " to " + c.Destination
	case c.Origin != "":
		return c.Origin
	case c.Destination != "":
		return c.Destination
	}
	return "All routes"
}

func sendPNG(c *fiber.Ctx, png []byte) error {
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func serviceError(err error) error {
	switch {
	case errors.Is(err, flights.ErrNoData):
		return fiber.NewError(fiber.StatusNotFound, "no data available for the requested selection")
	case errors.Is(err, store.ErrNotLoaded):
		return fiber.NewError(fiber.StatusServiceUnavailable, "dataset not loaded")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to query dataset")
}
