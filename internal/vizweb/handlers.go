package vizweb

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/ctxlog"
	"github.com/pdrpinto/gridsearch/internal/scenario"
	"github.com/pdrpinto/gridsearch/runner"
)

type gridRequest struct {
	Name           string             `json:"name"`
	Layout         []string           `json:"layout"`
	Rows           int                `json:"rows"`
	Cols           int                `json:"cols"`
	Start          *gridsearch.Coord  `json:"start"`
	End            *gridsearch.Coord  `json:"end"`
	Walls          []gridsearch.Coord `json:"walls"`
	Algorithm      string             `json:"algorithm"`
	Heuristic      string             `json:"heuristic"`
	StepsPerSecond float64            `json:"stepsPerSecond"`
}

type randomRequest struct {
	Rows           int     `json:"rows"`
	Cols           int     `json:"cols"`
	Clusters       int     `json:"clusters"`
	Steps          int     `json:"steps"`
	Density        float64 `json:"density"`
	Seed           int64   `json:"seed"`
	Algorithm      string  `json:"algorithm"`
	Heuristic      string  `json:"heuristic"`
	StepsPerSecond float64 `json:"stepsPerSecond"`
}

type algorithmRequest struct {
	Algorithm string `json:"algorithm" binding:"required"`
	Heuristic string `json:"heuristic"`
}

type speedRequest struct {
	StepsPerSecond float64 `json:"stepsPerSecond" binding:"required"`
}

// boardResponse is the full picture a renderer needs after a board change.
type boardResponse struct {
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Start     gridsearch.Coord   `json:"start"`
	End       gridsearch.Coord   `json:"end"`
	Walls     []gridsearch.Coord `json:"walls"`
	Algorithm string             `json:"algorithm"`
	Heuristic string             `json:"heuristic"`
	Frame     runner.Frame       `json:"frame"`
}

type pathResponse struct {
	Path          []gridsearch.Coord `json:"path"`
	Length        int                `json:"length"`
	ExpandedNodes int                `json:"expandedNodes"`
	Stats         gridsearch.Stats   `json:"stats"`
}

func board(sess *session) boardResponse {
	response := boardResponse{
		Rows:      sess.grid.Rows(),
		Cols:      sess.grid.Cols(),
		Start:     sess.grid.Start().Coord(),
		End:       sess.grid.End().Coord(),
		Walls:     []gridsearch.Coord{},
		Algorithm: sess.algorithm.String(),
		Heuristic: sess.heuristic,
		Frame:     sess.controller.Frame(),
	}
	for _, cell := range sess.grid.Cells() {
		if cell.Blocked() {
			response.Walls = append(response.Walls, cell.Coord())
		}
	}
	return response
}

// abortWithError maps domain errors to HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, gridsearch.ErrIllegalStep):
		status = http.StatusConflict
	case errors.Is(err, gridsearch.ErrNoPath):
		status = http.StatusNotFound
	case errors.Is(err, gridsearch.ErrInvalidGrid),
		errors.Is(err, gridsearch.ErrInvalidEndpoint),
		errors.Is(err, gridsearch.ErrUnknownAlgorithm),
		errors.Is(err, gridsearch.ErrUnknownHeuristic),
		errors.Is(err, runner.ErrInvalidSpeed):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		ctxlog.From(c.Request.Context()).Error("request failed", "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// settings resolves per-request overrides against the configured defaults.
func (s *Server) settings(algorithmName, heuristicName string, stepsPerSecond float64) (gridsearch.Algorithm, string, float64, error) {
	algorithm := s.cfg.Algorithm()
	if algorithmName != "" {
		parsed, err := gridsearch.ParseAlgorithm(algorithmName)
		if err != nil {
			return 0, "", 0, err
		}
		algorithm = parsed
	}
	if heuristicName == "" {
		heuristicName = s.cfg.Search.Heuristic
	}
	if stepsPerSecond <= 0 {
		stepsPerSecond = s.cfg.Search.StepsPerSecond
	}
	return algorithm, heuristicName, stepsPerSecond, nil
}

func (s *Server) loadBoard(c *gin.Context, grid *gridsearch.Grid, algorithmName, heuristicName string, stepsPerSecond float64) {
	algorithm, heuristic, speed, err := s.settings(algorithmName, heuristicName, stepsPerSecond)
	if err != nil {
		abortWithError(c, err)
		return
	}
	next, err := s.newSession(grid, algorithm, heuristic, speed)
	if err != nil {
		abortWithError(c, err)
		return
	}
	s.replace(next)
	ctxlog.From(c.Request.Context()).Info("board loaded",
		"rows", grid.Rows(), "cols", grid.Cols(), "algorithm", algorithm.String())
	c.JSON(http.StatusOK, board(next))
}

func (s *Server) handleGrid(c *gin.Context) {
	var req gridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	rows, cols := req.Rows, req.Cols
	if len(req.Layout) > 0 {
		rows, cols = len(req.Layout), len([]rune(req.Layout[0]))
	}
	if err := scenario.CheckSize(rows, cols, s.cfg.Server.MaxCells); err != nil {
		abortWithError(c, err)
		return
	}
	sc := scenario.Scenario{
		Name:   req.Name,
		Layout: req.Layout,
		Rows:   req.Rows,
		Cols:   req.Cols,
		Start:  req.Start,
		End:    req.End,
		Walls:  req.Walls,
	}
	grid, err := sc.Build()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.loadBoard(c, grid, req.Algorithm, req.Heuristic, req.StepsPerSecond)
}

func (s *Server) handleRandom(c *gin.Context) {
	defaults := scenario.DefaultRandomOptions()
	req := randomRequest{
		Rows:     defaults.Rows,
		Cols:     defaults.Cols,
		Clusters: defaults.Clusters,
		Steps:    defaults.Steps,
		Density:  defaults.Density,
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}
	if err := scenario.CheckSize(req.Rows, req.Cols, s.cfg.Server.MaxCells); err != nil {
		abortWithError(c, err)
		return
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	grid, err := scenario.Random(scenario.RandomOptions{
		Rows:     req.Rows,
		Cols:     req.Cols,
		Clusters: req.Clusters,
		Steps:    req.Steps,
		Density:  req.Density,
		Seed:     req.Seed,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	s.loadBoard(c, grid, req.Algorithm, req.Heuristic, req.StepsPerSecond)
}

// handleAlgorithm keeps the board and restarts it under another algorithm.
func (s *Server) handleAlgorithm(c *gin.Context) {
	var req algorithmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	current := s.current()
	s.loadBoard(c, current.grid.Clone(), req.Algorithm, req.Heuristic, current.controller.StepsPerSecond())
}

// handleClear removes every barrier but keeps the endpoints and settings.
func (s *Server) handleClear(c *gin.Context) {
	current := s.current()
	grid := current.grid.Clone()
	grid.ClearBarriers()
	s.loadBoard(c, grid, current.algorithm.String(), current.heuristic, current.controller.StepsPerSecond())
}

func (s *Server) handleStep(c *gin.Context) {
	sess := s.current()
	if _, err := sess.controller.StepOnce(); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.controller.Frame())
}

func (s *Server) handleReset(c *gin.Context) {
	sess := s.current()
	sess.controller.Reset()
	c.JSON(http.StatusOK, sess.controller.Frame())
}

func (s *Server) handlePause(c *gin.Context) {
	sess := s.current()
	sess.controller.Pause()
	c.JSON(http.StatusOK, sess.controller.Frame())
}

func (s *Server) handleResume(c *gin.Context) {
	sess := s.current()
	sess.controller.Resume()
	c.JSON(http.StatusOK, sess.controller.Frame())
}

func (s *Server) handleSpeed(c *gin.Context) {
	var req speedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	sess := s.current()
	if err := sess.controller.SetSpeed(req.StepsPerSecond); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.controller.Frame())
}

func (s *Server) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, board(s.current()))
}

func (s *Server) handlePath(c *gin.Context) {
	result, err := s.current().controller.Result()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pathResponse{
		Path:          result.Path,
		Length:        result.Length,
		ExpandedNodes: result.ExpandedNodes,
		Stats:         result.Stats,
	})
}
