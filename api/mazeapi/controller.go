package mazeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beka-birhanu/backtracking-maze/api/identity"
	dmn "github.com/beka-birhanu/backtracking-maze/domain"
	"github.com/beka-birhanu/backtracking-maze/maze"
	"github.com/beka-birhanu/backtracking-maze/service"
	"github.com/beka-birhanu/backtracking-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errBadPosition = errors.New("position must look like row,col")

// statusClientClosedRequest is the nginx convention for a caller that hung up.
const statusClientClosedRequest = 499

// MazeController serves generation and lookup of mazes.
type MazeController struct {
	mazeService i.MazeService
	logger      i.Logger
	timeout     time.Duration
}

// NewMazeController creates a MazeController; every generation is cut off after timeout.
func NewMazeController(ms i.MazeService, logger i.Logger, timeout time.Duration) (*MazeController, error) {
	if ms == nil || logger == nil {
		return nil, service.ErrMissingDependency
	}
	return &MazeController{
		mazeService: ms,
		logger:      logger,
		timeout:     timeout,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("", mc.recent)
		mazes.POST("/preview", mc.preview)
		mazes.GET("/:ID", mc.byID)
		mazes.GET("/:ID/ascii", mc.ascii)
		mazes.GET("/:ID/path", mc.path)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/mazes", mc.generate)
	route.GET("/users/me/mazes", mc.mine)
}

// generate builds and stores a maze owned by the caller.
func (mc *MazeController) generate(ctx *gin.Context) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, mc.timeout)
	defer cancel()
	m, err := mc.mazeService.Generate(timeoutCtx, &owner, request.Height, request.Width)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(m, false))
}

// preview builds a maze without storing it.
func (mc *MazeController) preview(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, mc.timeout)
	defer cancel()
	m, err := mc.mazeService.Preview(timeoutCtx, request.Height, request.Width)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(m, ctx.Query("detail") == "cells"))
}

func (mc *MazeController) recent(ctx *gin.Context) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mazes, err := mc.mazeService.Recent(ctx, limit)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newMazeResponses(mazes))
}

func (mc *MazeController) mine(ctx *gin.Context) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mazes, err := mc.mazeService.ByOwner(ctx, owner, limit)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newMazeResponses(mazes))
}

func (mc *MazeController) byID(ctx *gin.Context) {
	m, ok := mc.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, newMazeResponse(m, ctx.Query("detail") == "cells"))
}

// ascii renders a stored maze as text.
func (mc *MazeController) ascii(ctx *gin.Context) {
	m, ok := mc.lookup(ctx)
	if !ok {
		return
	}
	grid, err := m.Grid()
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.String(http.StatusOK, grid.String())
}

// path returns the passage between two cells, by default the top-left and bottom-right corners.
func (mc *MazeController) path(ctx *gin.Context) {
	m, ok := mc.lookup(ctx)
	if !ok {
		return
	}
	from, err := queryPosition(ctx, "from", maze.CellPosition{})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := queryPosition(ctx, "to", maze.CellPosition{Row: m.Height - 1, Col: m.Width - 1})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grid, err := m.Grid()
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	if !grid.InBound(from.Row, from.Col) || !grid.InBound(to.Row, to.Col) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "position is out of the maze"})
		return
	}

	cells := grid.Path(from, to)
	if cells == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no passage between the cells"})
		return
	}
	ctx.JSON(http.StatusOK, &PathResponse{From: from, To: to, Steps: len(cells) - 1, Cells: cells})
}

func (mc *MazeController) lookup(ctx *gin.Context) (*dmn.Maze, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return nil, false
	}

	m, err := mc.mazeService.ByID(ctx, id)
	if err != nil {
		mc.fail(ctx, err)
		return nil, false
	}
	return m, true
}

// fail maps service errors to responses. Unexpected errors are logged and hidden,
// a caller that went away is not an error.
func (mc *MazeController) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidDimension), errors.Is(err, service.ErrMazeTooLarge):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "maze generation timed out"})
	case errors.Is(err, context.Canceled):
		ctx.AbortWithStatus(statusClientClosedRequest)
	default:
		mc.logger.Error(fmt.Sprintf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func queryInt(ctx *gin.Context, key string) (int64, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func queryPosition(ctx *gin.Context, key string, def maze.CellPosition) (maze.CellPosition, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return def, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return def, errBadPosition
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return def, errBadPosition
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return def, errBadPosition
	}
	return maze.CellPosition{Row: row, Col: col}, nil
}
