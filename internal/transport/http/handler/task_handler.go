package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toodoo/internal/domain"
	"toodoo/internal/service"
	mdw "toodoo/internal/transport/http/middleware"
	resp "toodoo/internal/transport/http/response"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler { return &TaskHandler{tasks: tasks} }

func (h *TaskHandler) Mount(r gin.IRoutes) {
	r.GET("/tasks", h.list)
	r.POST("/tasks", h.create)
	r.GET("/tasks/:id", h.get)
	r.PATCH("/tasks/:id", h.update)
	r.DELETE("/tasks/:id", h.softDelete)
	r.POST("/tasks/:id/undo", h.undo)
}

// sortParam accepts only the documented orderings; anything else means
// "no server-side sort".
func sortParam(c *gin.Context) domain.TaskSort {
	switch s := domain.TaskSort(c.Query("sort")); s {
	case domain.SortCreated, domain.SortDue, domain.SortPriority:
		return s
	}
	return ""
}

func (h *TaskHandler) list(c *gin.Context) {
	ts, err := h.tasks.ListPersonal(c.Request.Context(), c.GetString(mdw.KeyUserID), sortParam(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (h *TaskHandler) create(c *gin.Context) {
	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}
	t, err := h.tasks.CreatePersonal(c.Request.Context(), c.GetString(mdw.KeyUserID), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TaskHandler) get(c *gin.Context) {
	t, err := h.tasks.GetPersonal(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) update(c *gin.Context) {
	var patch service.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}
	n, err := h.tasks.UpdatePersonal(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"), patch)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *TaskHandler) softDelete(c *gin.Context) {
	// The response body is the pre-delete snapshot; it is the client's
	// only handle for undo.
	t, err := h.tasks.SoftDeletePersonal(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) undo(c *gin.Context) {
	n, err := h.tasks.UndoPersonal(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": n})
}
