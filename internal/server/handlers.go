package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bce-toolkit/bce/internal/engine"
	"github.com/bce-toolkit/bce/internal/locale"
)

func (s *Server) handleHealth(c *gin.Context) {
	if s.store != nil {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			s.logger.Warn("history store unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "history store unreachable", Code: CodeUnavailable})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleBalance(c *gin.Context) {
	var req BalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest})
		return
	}

	opts := s.engine.Options()
	if req.AutoCorrect != nil {
		opts.AutoCorrect = *req.AutoCorrect
	}
	if req.SymbolHeader != "" {
		opts.SymbolHeader = req.SymbolHeader
	}

	out, err := s.engine.BalanceWith(c.Request.Context(), req.Expression, opts)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if out.Cached {
		s.metrics.cacheHits.Inc()
	}
	if !out.OK() {
		s.metrics.outcomes.WithLabelValues(out.Failure.Code).Inc()
		s.failure(c, out.Failure)
		return
	}
	s.metrics.outcomes.WithLabelValues("balanced").Inc()

	c.JSON(http.StatusOK, BalanceResponse{
		Expression: out.Expression,
		Balanced:   out.Balanced,
		Direction:  out.Direction,
		Cached:     out.Cached,
		RunID:      out.RunID,
		Seq:        out.Seq,
	})
}

func (s *Server) handleCheck(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest})
		return
	}

	out, err := s.engine.Check(c.Request.Context(), req.Expression)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if out.Failure != nil {
		s.failure(c, out.Failure)
		return
	}
	c.JSON(http.StatusOK, CheckResponse{Expression: out.Expression, Balanced: out.Balanced})
}

func (s *Server) handleRun(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "history is disabled", Code: CodeNotFound})
		return
	}
	runID := c.Param("id")
	entries, err := s.store.ReadRun(c.Request.Context(), runID)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if len(entries) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown run " + runID, Code: CodeNotFound})
		return
	}

	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntry{
			Seq:        e.Seq,
			Expression: e.Expression,
			Balanced:   e.Balanced,
			Direction:  e.Direction,
			ErrorCode:  e.ErrorCode,
		}
	}
	c.JSON(http.StatusOK, gin.H{"run_id": runID, "entries": out})
}

// failure writes a parse failure as 400 and a balance failure as 422.
func (s *Server) failure(c *gin.Context, f *engine.Failure) {
	resp := ErrorResponse{
		Error:   locale.Message(s.language(c), f.MessageKey, f.Details),
		Code:    f.Code,
		Details: f.Details,
	}
	status := http.StatusUnprocessableEntity
	if f.Kind == engine.FailureParse {
		status = http.StatusBadRequest
		pos := f.Pos
		resp.Position = &pos
	}
	c.JSON(status, resp)
}

func (s *Server) internalError(c *gin.Context, err error) {
	if errors.Is(err, engine.ErrInvalidOptions) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidOptions})
		return
	}
	s.logger.Error("balance request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: CodeInternal})
}
