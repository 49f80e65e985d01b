package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/core/ports"
)

type verifyForm struct {
	Jurisdiction string `form:"jurisdiction" label:"Jurisdiction" validate:"required,oneof=IN US UK"`
	Language     string `form:"language" label:"Language" validate:"required,oneof=en hi"`
}

// VerifyView is the data for the verify-document page.
type VerifyView struct {
	Jurisdiction string
	Language     string
	Result       *ports.VerificationResult
	Error        string
}

type VerifyHandler struct {
	api       ports.LawbotAPI
	layout    *Layout
	maxUpload int64
	log       zerolog.Logger
}

func NewVerifyHandler(api ports.LawbotAPI, layout *Layout, maxUpload int64, log zerolog.Logger) *VerifyHandler {
	return &VerifyHandler{api: api, layout: layout, maxUpload: maxUpload, log: log.With().Str("component", "verify_handler").Logger()}
}

func (h *VerifyHandler) Show(c echo.Context) error {
	return h.render(c, VerifyView{Jurisdiction: "IN", Language: "en"})
}

// Verify handles the multipart POST /verify and forwards the file to the
// backend unchanged.
func (h *VerifyHandler) Verify(c echo.Context) error {
	var in verifyForm
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	view := VerifyView{Jurisdiction: in.Jurisdiction, Language: in.Language}
	if err := c.Validate(&in); err != nil {
		view.Error = err.Error()
		return h.render(c, view)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			view.Error = "Please select a contract file to verify."
			return h.render(c, view)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		view.Error = fmt.Sprintf("The file is too large. The limit is %d MB.", h.maxUpload>>20)
		return h.render(c, view)
	}

	file, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	res, err := h.api.VerifyDocument(c.Request().Context(), ports.VerifyDocumentRequest{
		Filename:     fh.Filename,
		Content:      file,
		Jurisdiction: in.Jurisdiction,
		Language:     in.Language,
	})
	if err != nil {
		msg, err := backendMessage(err, "Verification failed.")
		if err != nil {
			return err
		}
		view.Error = msg
		return h.render(c, view)
	}
	view.Result = res
	return h.render(c, view)
}

func (h *VerifyHandler) render(c echo.Context, view VerifyView) error {
	p := h.layout.Page(c, "Verify Document")
	p.Data = view
	return c.Render(http.StatusOK, "verify", p)
}
