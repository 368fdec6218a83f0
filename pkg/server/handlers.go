package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/checkdisout/checkdisout/pkg/export"
	"github.com/checkdisout/checkdisout/pkg/logger"
	"github.com/checkdisout/checkdisout/pkg/portfolio"
	"github.com/checkdisout/checkdisout/pkg/store"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 10 << 20

// Renderer produces the PDF for an export input.
type Renderer interface {
	Render(ctx context.Context, in export.Input) ([]byte, error)
}

// Loader reads stored portfolios.
type Loader interface {
	Load(ctx context.Context, userID string) (portfolio.Bundle, error)
}

// Handler serves the export API.
type Handler struct {
	renderer Renderer
	loader   Loader
}

// NewHandler creates a handler. loader may be nil when no store is configured.
func NewHandler(renderer Renderer, loader Loader) (h *Handler) {
	h = &Handler{renderer: renderer, loader: loader}
	return h
}

// Export renders the posted portfolio.
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	data, apiErr := readBody(c)
	if apiErr != nil {
		respondError(c, *apiErr)
		return
	}

	doc, err := portfolio.DecodeRequest(data)
	if err != nil {
		respondError(c, decodeError(c, err))
		return
	}

	h.sendPDF(c, export.FromDocument(doc))
}

// Stats summarizes the posted portfolio.
// POST /api/stats
func (h *Handler) Stats(c *gin.Context) {
	data, apiErr := readBody(c)
	if apiErr != nil {
		respondError(c, *apiErr)
		return
	}

	doc, err := portfolio.DecodeDocument(data, portfolio.FormatJSON)
	if err != nil {
		respondError(c, decodeError(c, err))
		return
	}

	c.JSON(http.StatusOK, portfolio.ComputeStats(doc.Bundle()))
}

// UserPortfolio renders a stored portfolio.
// GET /api/users/:id/portfolio.pdf
func (h *Handler) UserPortfolio(c *gin.Context) {
	selection, err := querySelection(c)
	if err != nil {
		respondError(c, badRequest(MsgInvalidSelector))
		return
	}

	userID := c.Param("id")
	bundle, err := h.loader.Load(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, apiError{Status: http.StatusNotFound, Message: MsgUserNotFound})
			return
		}
		logger.WithContext(c.Request.Context()).Error("failed to load portfolio", zap.String("user_id", userID), zap.Error(err))
		respondError(c, apiError{Status: http.StatusInternalServerError, Message: MsgLoadFailed})
		return
	}

	h.sendPDF(c, export.NewInput(bundle, selection))
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) sendPDF(c *gin.Context, in export.Input) {
	data, err := h.renderer.Render(c.Request.Context(), in)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("export failed", zap.Error(err))
		respondError(c, apiError{Status: http.StatusInternalServerError, Message: MsgRenderFailed})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DefaultFilename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func readBody(c *gin.Context) (data []byte, apiErr *apiError) {
	var err error
	data, err = io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apiErr = &apiError{Status: http.StatusRequestEntityTooLarge, Message: MsgBodyTooLarge}
			return data, apiErr
		}
		e := badRequest(MsgInvalidBody)
		apiErr = &e
		return data, apiErr
	}
	return data, apiErr
}

func decodeError(c *gin.Context, err error) (e apiError) {
	var shapeErr *portfolio.ShapeError
	if errors.As(err, &shapeErr) {
		e = badRequest(shapeErr.Error())
		return e
	}

	logger.WithContext(c.Request.Context()).Debug("rejected request body", zap.Error(err))
	e = badRequest(MsgInvalidBody)
	return e
}

// querySelection reads the section flags. Absent flags select the section.
func querySelection(c *gin.Context) (selection portfolio.Selection, err error) {
	flags := []struct {
		key    string
		target *bool
	}{
		{portfolio.SectionAchievements, &selection.Achievements},
		{portfolio.SectionProjects, &selection.Projects},
		{portfolio.SectionParticipations, &selection.Participations},
	}

	for _, f := range flags {
		raw, present := c.GetQuery(f.key)
		if !present || raw == "" {
			*f.target = true
			continue
		}
		*f.target, err = strconv.ParseBool(raw)
		if err != nil {
			err = errors.Wrapf(err, "invalid %s flag", f.key)
			return selection, err
		}
	}

	return selection, err
}
