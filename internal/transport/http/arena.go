package http

import (
	"net/http"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/arena"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type ArenaHandler struct {
	Jobs           *arena.Manager
	DefaultWorkers int
}

func NewArenaHandler(jobs *arena.Manager, defaultWorkers int) *ArenaHandler {
	return &ArenaHandler{Jobs: jobs, DefaultWorkers: defaultWorkers}
}

type startArenaRequest struct {
	A        string `json:"a" binding:"required"`
	B        string `json:"b" binding:"required"`
	Games    int    `json:"games" binding:"required"`
	Workers  int    `json:"workers"`
	BudgetMs int    `json:"budget_ms"`
}

// Start answers POST /api/arena
func (h *ArenaHandler) Start(c *gin.Context) {
	var req startArenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	workers := req.Workers
	if workers <= 0 {
		workers = h.DefaultWorkers
	}

	job, err := h.Jobs.Start(arena.Config{
		A:       req.A,
		B:       req.B,
		Games:   req.Games,
		Workers: workers,
		Budget:  time.Duration(req.BudgetMs) * time.Millisecond,
	}, c.GetString(middleware.ContextName))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, job)
}

// Get answers GET /api/arena/:id
func (h *ArenaHandler) Get(c *gin.Context) {
	job, ok := h.Jobs.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}
