package http

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/bucketlist/internal/core/domain"
)

// CityHandler returns the home city and its default viewport.
func CityHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		city := deps.Catalog.City()
		return c.JSON(fiber.Map{
			"name":     city.Name,
			"center":   city.Center,
			"viewport": city.DefaultViewport(),
		})
	}
}

// ListAttractionsHandler returns the card list: every attraction in catalog
// order with its distance from the city center.
func ListAttractionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cards, err := deps.Catalog.Cards(c.UserContext())
		if err != nil {
			return errInternal(c, err.Error())
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 50)
		if limit <= 0 || limit > 200 {
			limit = 50
		}

		page, pg := paginate(cards, offset, limit)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// queryFloat parses a finite float query parameter. A missing parameter
// yields def; anything unparseable, NaN or infinite is an error.
func queryFloat(c *fiber.Ctx, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a finite number", name)
	}
	return v, nil
}

// queryPoint reads the required lat and lon query parameters.
func queryPoint(c *fiber.Ctx) (domain.GeoPoint, error) {
	if c.Query("lat") == "" || c.Query("lon") == "" {
		return domain.GeoPoint{}, errors.New("lat and lon are required")
	}
	lat, err := queryFloat(c, "lat", 0)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	lon, err := queryFloat(c, "lon", 0)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}

// NearbyAttractionsHandler returns attractions within radius_miles of a point.
func NearbyAttractionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		at, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		radius, err := queryFloat(c, "radius_miles", 1)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		limit := c.QueryInt("limit", 20)

		if radius <= 0 || radius > 100 {
			return errBadRequest(c, "radius_miles must be between 0 and 100")
		}
		if limit <= 0 || limit > 50 {
			limit = 20
		}

		cards, err := deps.Catalog.Nearby(c.UserContext(), at, radius, limit)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(cards)
	}
}

// AttractionDistanceHandler returns the distance from an attraction to an
// arbitrary reference point.
func AttractionDistanceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		id := domain.AttractionID(c.Params("id"))
		miles, err := deps.Catalog.DistanceFrom(c.UserContext(), id, ref)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(fiber.Map{
			"id":             id,
			"from":           ref,
			"distance_miles": miles,
			"distance_label": domain.FormatMiles(miles),
		})
	}
}

// GetAttractionHandler returns the detail sheet for one attraction.
func GetAttractionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "attraction id is required")
		}
		detail, err := deps.Catalog.Detail(c.UserContext(), domain.AttractionID(id))
		if errors.Is(err, domain.ErrNotFound) {
			return errNotFound(c, "attraction not found")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(detail)
	}
}

// ViewStateHandler returns the current selection and viewport.
func ViewStateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(newViewResponse(deps.View.State(), nil))
	}
}

// VisibleAttractionsHandler returns the cards of attractions inside the
// current viewport.
func VisibleAttractionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cards, err := deps.Catalog.InView(c.UserContext(), deps.View.State().Viewport)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(cards)
	}
}

// SelectAttractionHandler focuses the map on an attraction (pin or card tap).
func SelectAttractionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "attraction id is required")
		}
		return applyEvent(c, deps, domain.SelectAttraction{ID: domain.AttractionID(id)})
	}
}

// ClearSelectionHandler dismisses the detail sheet.
func ClearSelectionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return applyEvent(c, deps, domain.ClearSelection{})
	}
}

// ViewEventHandler accepts an explicit event message in the request body.
func ViewEventHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ev, err := decodeEvent(c.Body())
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return applyEvent(c, deps, ev)
	}
}

func applyEvent(c *fiber.Ctx, deps *Dependencies, ev domain.Event) error {
	ctx := c.UserContext()
	state, effects, err := deps.View.Apply(ctx, ev)
	if err != nil {
		LoggerFromCtx(ctx).Info("view event rejected", "event", ev.Name(), "error", err)
		return errFromDomain(c, err)
	}
	LoggerFromCtx(ctx).Debug("view event applied", "event", ev.Name(), "mode", state.Mode())
	return c.JSON(newViewResponse(state, effects))
}
