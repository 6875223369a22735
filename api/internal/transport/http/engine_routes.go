package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sudoku-api/internal/sudoku/engine"
	"sudoku-api/pkg/constants"
)

// SolveEngineRequest submits a full grid of givens to the box-scoped
// logical deduction engine, distinct from the move-by-move human solver
// behind /api/solve/next and /api/solve/all.
type SolveEngineRequest struct {
	Givens []int  `json:"givens" binding:"required"`
	Mode   string `json:"mode"` // "sequential" (default), "parallel", "coordinated"
}

func engineModeFromString(mode string) engine.Mode {
	switch mode {
	case "parallel":
		return engine.IndependentParallel
	case "coordinated":
		return engine.CoordinatedParallel
	default:
		return engine.Sequential
	}
}

// solveEngineHandler runs the given grid through the box-scoped engine and
// reports either the solved grid or a diagnostic outcome (givens conflict
// or contradiction) with the partial state for the caller to inspect.
func solveEngineHandler(c *gin.Context) {
	var req SolveEngineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Givens) != constants.TotalCells {
		c.JSON(http.StatusBadRequest, gin.H{"error": "givens must have 81 cells"})
		return
	}

	var givens [81]int
	copy(givens[:], req.Givens)

	mode := engineModeFromString(req.Mode)
	solved, out := engine.Solve(givens, mode)
	if !out.IsOk() {
		c.JSON(http.StatusOK, gin.H{
			"solved": false,
			"reason": out.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"solved": true,
		"board":  solved.Grid(),
	})
}
