package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toodoo/internal/domain"
	"toodoo/internal/service"
	mdw "toodoo/internal/transport/http/middleware"
	resp "toodoo/internal/transport/http/response"
)

type CollabHandler struct {
	collab *service.CollabService
	tasks  *service.TaskService
}

func NewCollabHandler(collab *service.CollabService, tasks *service.TaskService) *CollabHandler {
	return &CollabHandler{collab: collab, tasks: tasks}
}

func (h *CollabHandler) Mount(r gin.IRoutes) {
	r.GET("/collab-lists", h.lists)
	r.POST("/collab-lists", h.createList)
	r.GET("/collab-lists/:id/members", h.members)
	r.POST("/collab-lists/:id/members", h.addMember)
	r.DELETE("/collab-lists/:id/members/:userId", h.removeMember)
	r.GET("/collab-lists/:id/tasks", h.listTasks)
	r.POST("/collab-lists/:id/tasks", h.createTask)
	r.PATCH("/collab-tasks/:id", h.updateTask)
	r.DELETE("/collab-tasks/:id", h.deleteTask)
	r.POST("/collab-tasks/:id/undo", h.undoTask)
}

func (h *CollabHandler) lists(c *gin.Context) {
	owned, shared, err := h.collab.Visible(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"owned": owned, "shared": shared})
}

func (h *CollabHandler) createList(c *gin.Context) {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}
	l, err := h.collab.CreateList(c.Request.Context(), c.GetString(mdw.KeyUserID), in.Name)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *CollabHandler) members(c *gin.Context) {
	ms, err := h.collab.Members(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ms)
}

func (h *CollabHandler) addMember(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" {
		resp.Fail(c, domain.Validation("email is required"))
		return
	}
	if err := h.collab.AddMember(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"), in.Email); err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CollabHandler) removeMember(c *gin.Context) {
	err := h.collab.RemoveMember(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"), c.Param("userId"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CollabHandler) listTasks(c *gin.Context) {
	ts, err := h.tasks.ListCollab(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"), sortParam(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (h *CollabHandler) createTask(c *gin.Context) {
	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}
	t, err := h.tasks.CreateCollab(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *CollabHandler) updateTask(c *gin.Context) {
	var patch service.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}
	n, err := h.tasks.UpdateCollab(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"), patch)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *CollabHandler) deleteTask(c *gin.Context) {
	t, err := h.tasks.SoftDeleteCollab(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *CollabHandler) undoTask(c *gin.Context) {
	n, err := h.tasks.UndoCollab(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": n})
}
