package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workbridge/internal/middleware"
	"workbridge/internal/models"
	"workbridge/internal/services"
	"workbridge/internal/services/dto"
	"workbridge/pkg/apperrors"
)

type JobHandler struct {
	*BaseHandler
	jobService *services.JobService
}

func NewJobHandler(base *BaseHandler, jobService *services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobService: jobService}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.List)
		jobs.GET("/available", h.ListAvailable)
		jobs.GET("/:id", h.Get)
		jobs.GET("/:id/deliverables", h.ListDeliverables)
		jobs.GET("/:id/deliverables/current", h.GetCurrentDeliverable)
	}

	authed := rg.Group("/jobs", middleware.AuthMiddleware())
	{
		authed.GET("/mine", h.ListMine)

		client := authed.Group("", middleware.RequireRoles(models.UserRoleClient))
		{
			client.POST("", h.Create)
			client.PUT("/:id", h.Update)
			client.DELETE("/:id", h.Delete)
			client.POST("/:id/confirm", h.Confirm)
			client.POST("/:id/assign", h.Assign)
			client.POST("/:id/reject", h.Reject)
			client.POST("/:id/complete", h.Complete)
		}

		freelancer := authed.Group("", middleware.RequireRoles(models.UserRoleFreelancer))
		{
			freelancer.POST("/:id/request", h.Request)
			freelancer.POST("/:id/deliverables", h.UploadDeliverable)
		}
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.jobService.CreateJob(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *JobHandler) Get(c *gin.Context) {
	resp, err := h.jobService.GetJob(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *JobHandler) List(c *gin.Context) {
	var status *models.JobStatus
	if raw := c.Query("status"); raw != "" {
		s := models.JobStatus(raw)
		status = &s
	}

	resp, err := h.jobService.ListJobs(status)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"jobs": resp})
}

func (h *JobHandler) ListAvailable(c *gin.Context) {
	resp, err := h.jobService.ListAvailableJobs()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"jobs": resp})
}

// ListMine returns the caller's jobs on whichever side of the
// marketplace they act.
func (h *JobHandler) ListMine(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var (
		resp []*dto.JobResponse
		err  error
	)
	if role == models.UserRoleClient {
		resp, err = h.jobService.ListJobsByClient(userID)
	} else {
		resp, err = h.jobService.ListJobsByFreelancer(userID)
	}
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"jobs": resp})
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	if err := h.jobService.UpdateJob(c.Param("id"), userID, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Job updated"})
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Param("id"), userID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Request claims an unassigned job for the calling freelancer. The
// response always succeeds; claimed reports whether this caller won.
func (h *JobHandler) Request(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	claimed, err := h.jobService.RequestJob(c.Param("id"), userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"claimed": claimed})
}

func (h *JobHandler) Confirm(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.ConfirmJob(c.Param("id"), userID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Job confirmed"})
}

func (h *JobHandler) Assign(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.AssignFreelancerRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	if err := h.jobService.AssignFreelancer(c.Param("id"), userID, req.FreelancerID, req.Price); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Freelancer assigned"})
}

func (h *JobHandler) UploadDeliverable(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UploadDeliverableRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	if err := h.jobService.UploadDeliverable(c.Param("id"), userID, req.FilePath); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"message": "Deliverable uploaded"})
}

func (h *JobHandler) Reject(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.RejectJobRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	if err := h.jobService.RejectJob(c.Param("id"), userID, req.Reason); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Delivery rejected"})
}

func (h *JobHandler) Complete(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.CompleteJob(c.Param("id"), userID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Job completed"})
}

func (h *JobHandler) ListDeliverables(c *gin.Context) {
	resp, err := h.jobService.GetDeliverables(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"deliverables": resp})
}

func (h *JobHandler) GetCurrentDeliverable(c *gin.Context) {
	resp, err := h.jobService.GetCurrentDeliverable(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
