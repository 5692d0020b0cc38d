package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo-admin/core/collection"
)

var searchParam = "search"

// bindQuery reads the search term & one filter per dimension from the query string.
func bindQuery(ctx echo.Context, dims []collection.DimensionOptions) collection.Query {
	q := collection.Query{
		Search:  ctx.QueryParam(searchParam),
		Filters: make(map[string]string, len(dims)),
	}
	for _, dim := range dims {
		if val := ctx.QueryParam(dim.Name); val != "" {
			q.Filters[dim.Name] = val
		}
	}
	q.Clean()
	return q
}

func bindIndex(ctx echo.Context) (int, error) {
	idx, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return 0, errBadIndex
	}
	return idx, nil
}
