package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/bucketlist/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	viewportType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Viewport",
		Fields: graphql.Fields{
			"center":          &graphql.Field{Type: geoPointType},
			"latitude_delta":  &graphql.Field{Type: graphql.Float},
			"longitude_delta": &graphql.Field{Type: graphql.Float},
		},
	})

	attractionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Attraction",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"name":           &graphql.Field{Type: graphql.String},
			"coordinate":     &graphql.Field{Type: geoPointType},
			"description":    &graphql.Field{Type: graphql.String},
			"icon":           &graphql.Field{Type: graphql.String},
			"distance_miles": &graphql.Field{Type: graphql.Float},
			"distance_label": &graphql.Field{Type: graphql.String},
			"distance": &graphql.Field{
				Type:        graphql.Float,
				Description: "Distance in miles from the given point",
				Args: graphql.FieldConfigArgument{
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					src, _ := p.Source.(map[string]interface{})
					id, _ := src["id"].(string)
					ref := domain.GeoPoint{Lat: p.Args["lat"].(float64), Lon: p.Args["lon"].(float64)}
					return deps.Catalog.DistanceFrom(p.Context, domain.AttractionID(id), ref)
				},
			},
		},
	})

	viewType := graphql.NewObject(graphql.ObjectConfig{
		Name: "View",
		Fields: graphql.Fields{
			"selection": &graphql.Field{Type: graphql.String},
			"mode":      &graphql.Field{Type: graphql.String},
			"viewport":  &graphql.Field{Type: viewportType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"city": &graphql.Field{
				Type: graphql.NewObject(graphql.ObjectConfig{
					Name: "City",
					Fields: graphql.Fields{
						"name":   &graphql.Field{Type: graphql.String},
						"center": &graphql.Field{Type: geoPointType},
					},
				}),
				Description: "Home city of the map",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					city := deps.Catalog.City()
					return map[string]interface{}{"name": city.Name, "center": pointToMap(city.Center)}, nil
				},
			},
			"attractions": &graphql.Field{
				Type:        graphql.NewList(attractionType),
				Description: "All attractions with their distance from the city center",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cards, err := deps.Catalog.Cards(p.Context)
					if err != nil {
						return nil, err
					}
					result := make([]map[string]interface{}, 0, len(cards))
					for _, card := range cards {
						result = append(result, cardToMap(card))
					}
					return result, nil
				},
			},
			"attraction": &graphql.Field{
				Type:        attractionType,
				Description: "Get an attraction by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := domain.AttractionID(p.Args["id"].(string))
					detail, err := deps.Catalog.Detail(p.Context, id)
					if err != nil {
						return nil, err
					}
					return cardToMap(domain.AttractionCard{
						Attraction:    detail.Attraction,
						DistanceMiles: detail.DistanceMiles,
						DistanceLabel: domain.FormatMiles(detail.DistanceMiles),
					}), nil
				},
			},
			"view": &graphql.Field{
				Type:        viewType,
				Description: "Current selection and viewport",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return viewToMap(deps.View.State()), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"selectAttraction": &graphql.Field{
				Type:        viewType,
				Description: "Focus the map on an attraction",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := domain.AttractionID(p.Args["id"].(string))
					state, _, err := deps.View.Select(p.Context, id)
					if err != nil {
						return nil, err
					}
					return viewToMap(state), nil
				},
			},
			"clearSelection": &graphql.Field{
				Type:        viewType,
				Description: "Dismiss the selected attraction",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					state, _, err := deps.View.Clear(p.Context)
					if err != nil {
						return nil, err
					}
					return viewToMap(state), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func pointToMap(p domain.GeoPoint) map[string]interface{} {
	return map[string]interface{}{"lat": p.Lat, "lon": p.Lon}
}

func cardToMap(card domain.AttractionCard) map[string]interface{} {
	return map[string]interface{}{
		"id":             string(card.ID),
		"name":           card.Name,
		"coordinate":     pointToMap(card.Coordinate),
		"description":    card.Description,
		"icon":           card.Icon,
		"distance_miles": card.DistanceMiles,
		"distance_label": card.DistanceLabel,
	}
}

func viewToMap(state domain.ViewState) map[string]interface{} {
	m := map[string]interface{}{
		"selection": nil,
		"mode":      state.Mode(),
		"viewport": map[string]interface{}{
			"center":          pointToMap(state.Viewport.Center),
			"latitude_delta":  state.Viewport.Span.LatitudeDelta,
			"longitude_delta": state.Viewport.Span.LongitudeDelta,
		},
	}
	if id, ok := state.Selection.Get(); ok {
		m["selection"] = string(id)
	}
	return m
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
