package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type blurResponse struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidateField handles POST /validate/:form/:field. The posted body carries
// every current value of the form; only :field is touched and re-validated.
func ValidateField(c echo.Context) error {
	schema, ok := schemas[c.Param("form")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown form")
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	field := c.Param("field")
	f := fillForm(schema(), params)
	f.HandleBlur(field)
	return c.JSON(http.StatusOK, blurResponse{Field: field, Error: f.VisibleError(field)})
}
