package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lawbot360/web/internal/core/ports"
)

type explainForm struct {
	Text         string `form:"text" label:"Clause or text" validate:"required,max=10000"`
	Jurisdiction string `form:"jurisdiction" label:"Jurisdiction" validate:"required,oneof=IN US UK"`
	Language     string `form:"language" label:"Language" validate:"required,oneof=en hi"`
	Detail       string `form:"detail" label:"Output detail" validate:"omitempty,oneof=summary detailed"`
}

// ExplainView is the data for the explain-law page.
type ExplainView struct {
	explainForm
	Result *ports.ExplainResult
	Error  string
}

type ExplainHandler struct {
	api    ports.LawbotAPI
	layout *Layout
}

func NewExplainHandler(api ports.LawbotAPI, layout *Layout) *ExplainHandler {
	return &ExplainHandler{api: api, layout: layout}
}

func (h *ExplainHandler) Show(c echo.Context) error {
	return h.render(c, ExplainView{explainForm: explainForm{Jurisdiction: "IN", Language: "en", Detail: "summary"}})
}

// Explain handles POST /explain. The detail level only changes how the
// result is presented; it is not sent to the backend.
func (h *ExplainHandler) Explain(c echo.Context) error {
	var in explainForm
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	in.Text = strings.TrimSpace(in.Text)
	view := ExplainView{explainForm: in}
	if err := c.Validate(&in); err != nil {
		view.Error = err.Error()
		return h.render(c, view)
	}

	res, err := h.api.Explain(c.Request().Context(), ports.ExplainRequest{
		Text:         in.Text,
		Jurisdiction: in.Jurisdiction,
		Language:     in.Language,
	})
	if err != nil {
		msg, err := backendMessage(err, "Failed to fetch explanation.")
		if err != nil {
			return err
		}
		view.Error = msg
		return h.render(c, view)
	}
	view.Result = res
	return h.render(c, view)
}

func (h *ExplainHandler) render(c echo.Context, view ExplainView) error {
	p := h.layout.Page(c, "Explain Law")
	p.Data = view
	return c.Render(http.StatusOK, "explain", p)
}
