package handler

import (
	"errors"

	"github.com/fadilmartias/applicant-portal/internal/geo"
	"github.com/fadilmartias/applicant-portal/internal/model"
	"github.com/fadilmartias/applicant-portal/internal/service"
	"github.com/fadilmartias/applicant-portal/internal/util"
	"github.com/gofiber/fiber/v2"
)

type CityHandler struct {
	cities  service.CityServiceInterface
	catalog *geo.Catalog
}

func NewCityHandler(cities service.CityServiceInterface, catalog *geo.Catalog) *CityHandler {
	return &CityHandler{cities: cities, catalog: catalog}
}

func (h *CityHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/cities", h.Cities)
	app.Get("/api/options", h.Options)
}

func (h *CityHandler) Cities(c *fiber.Ctx) error {
	lookup, err := h.cities.Cities(c.UserContext(), c.Query("country"))
	switch {
	case errors.Is(err, service.ErrCountryRequired):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Country is required.",
		})
	case errors.Is(err, service.ErrInvalidCountry):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid country.",
		})
	case err != nil:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Failed to load cities.",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Cities loaded",
		Data:    lookup,
	})
}

// Options lists the fixed choices offered by the application form.
func (h *CityHandler) Options(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Options loaded",
		Data: fiber.Map{
			"positions":      model.PositionOptions,
			"certifications": model.CertificationOptions,
			"countries":      h.catalog.Countries(),
		},
	})
}
