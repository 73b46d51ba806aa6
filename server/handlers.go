package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"evostudio/content"
	"evostudio/convert/report"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Blocks content.Blocks `json:"blocks"`
}

type renderRequest struct {
	Blocks   content.Blocks        `json:"blocks"`
	Category string                `json:"category"`
	Bonus    []report.BonusElement `json:"bonus"`
	Links    []report.Link         `json:"links"`
}

func (s *Server) parse(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	blocks := content.Parse(req.Text)
	if blocks == nil {
		blocks = content.Blocks{}
	}
	return c.JSON(http.StatusOK, parseResponse{Blocks: blocks})
}

func (s *Server) render(c echo.Context) error {
	const entry = "blocks"

	var req renderRequest
	if err := c.Bind(&req); err != nil {
		s.metrics.observeFailure(entry, "decode")
		return err
	}

	start := time.Now()
	html, err := s.rnd.RenderPage(report.Page{
		Blocks:   req.Blocks,
		Category: req.Category,
		Bonus:    req.Bonus,
		Links:    req.Links,
	})
	if err != nil {
		s.metrics.observeFailure(entry, failureReason(err))
		return err
	}
	s.metrics.observeRender(entry, start)

	s.log.Debug("Rendered", zap.String("entry", entry), zap.Int("blocks", len(req.Blocks)), zap.Int("bytes", len(html)))
	return c.HTML(http.StatusOK, html)
}

func (s *Server) renderFields(c echo.Context) error {
	const entry = "fields"

	f := report.NewFields()
	if err := c.Bind(&f); err != nil {
		s.metrics.observeFailure(entry, "decode")
		return err
	}

	start := time.Now()
	html, err := s.rnd.RenderFields(f)
	if err != nil {
		s.metrics.observeFailure(entry, failureReason(err))
		return err
	}
	s.metrics.observeRender(entry, start)

	s.log.Debug("Rendered", zap.String("entry", entry), zap.String("heading", f.Heading), zap.Int("bytes", len(html)))
	return c.HTML(http.StatusOK, html)
}

func failureReason(err error) string {
	if errors.Is(err, report.ErrValidation) {
		return "validation"
	}
	return "render"
}
