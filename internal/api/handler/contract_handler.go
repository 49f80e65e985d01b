package handler

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/web"
)

var contractTypes = []string{"NDA", "Employment", "Service", "Consultant", "Lease", "Partnership", "Vendor"}

type contractForm struct {
	ContractType string `form:"contractType" label:"Contract type" validate:"required,oneof=NDA Employment Service Consultant Lease Partnership Vendor"`
	Parties      string `form:"parties" label:"Parties" validate:"required,max=500"`
	Summary      string `form:"summary" label:"Summary" validate:"max=4000"`
	Jurisdiction string `form:"jurisdiction" label:"Jurisdiction" validate:"required,oneof=IN US UK"`
	Language     string `form:"language" label:"Language" validate:"required,oneof=en hi"`
}

// ContractView is the data for the create-contract page.
type ContractView struct {
	Input   contractForm
	Types   []string
	Result  *ports.ContractResult
	Preview template.HTML
	Error   string
}

type ContractHandler struct {
	api    ports.LawbotAPI
	layout *Layout
	log    zerolog.Logger
}

func NewContractHandler(api ports.LawbotAPI, layout *Layout, log zerolog.Logger) *ContractHandler {
	return &ContractHandler{api: api, layout: layout, log: log.With().Str("component", "contract_handler").Logger()}
}

func (h *ContractHandler) Show(c echo.Context) error {
	return h.render(c, ContractView{Input: contractForm{Jurisdiction: "IN", Language: "en"}})
}

// Generate handles POST /create.
func (h *ContractHandler) Generate(c echo.Context) error {
	var in contractForm
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	view := ContractView{Input: in}
	if err := c.Validate(&in); err != nil {
		view.Error = err.Error()
		return h.render(c, view)
	}

	res, err := h.api.GenerateContract(c.Request().Context(), ports.GenerateContractRequest{
		ContractType: in.ContractType,
		Parties:      splitParties(in.Parties),
		Terms:        map[string]any{"summary": in.Summary},
		Jurisdiction: in.Jurisdiction,
		Language:     in.Language,
	})
	if err != nil {
		msg, err := backendMessage(err, "Failed to generate contract.")
		if err != nil {
			return err
		}
		view.Error = msg
		return h.render(c, view)
	}

	view.Result = res
	view.Preview, err = contractPreview(res)
	if err != nil {
		h.log.Warn().Err(err).Int64("contract_id", res.ContractID).Msg("could not render contract markdown")
	}
	return h.render(c, view)
}

// contractPreview renders the backend's markdown, which goldmark converts
// with raw HTML dropped. The backend's own HTML is used only when no
// markdown came back; it is first-party output and is embedded unescaped.
func contractPreview(res *ports.ContractResult) (template.HTML, error) {
	if res.Markdown == "" && res.HTML != "" {
		return template.HTML(res.HTML), nil
	}
	return web.Markdown(res.Markdown)
}

func splitParties(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *ContractHandler) render(c echo.Context, view ContractView) error {
	view.Types = contractTypes
	p := h.layout.Page(c, "Create Contract")
	p.Data = view
	return c.Render(http.StatusOK, "create", p)
}
