package http

import (
	"github.com/gin-gonic/gin"

	"push-to-memory/pkg/response"
)

// List godoc
// @Summary     List reflections
// @Description Returns the caller's reflections, newest first.
// @Tags        Reflections
// @Produce     json
// @Security    BearerAuth
// @Param       repository query string false "Filter by repository name"
// @Param       status     query string false "Filter by status (pending/completed/skipped)"
// @Param       limit      query int    false "Page size (default: 20, max: 100)"
// @Param       offset     query int    false "Page offset (default: 0)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/reflections [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.List(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get a reflection
// @Tags        Reflections
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Reflection ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/reflections/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Detail(ctx, sc, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDetailResp(output))
}

// Update godoc
// @Summary     Write or skip a reflection
// @Description Stores the reflection text and status. Status defaults to completed, which requires text. Skipped clears the text.
// @Tags        Reflections
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string    true "Reflection ID"
// @Param       body body updateReq true "Reflection"
// @Success     200 {object} updateResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/reflections/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Update(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newUpdateResp(output))
}

// Summarize godoc
// @Summary     Summarize reflections
// @Description Sends the caller's written reflections (newest 50) to Gemini with the given prompt.
// @Tags        Reflections
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body summarizeReq false "Prompt and optional repository filter"
// @Success     200 {object} summarizeResp
// @Failure     400 {object} response.Resp "Bad Request - nothing to summarize"
// @Failure     503 {object} response.Resp "Summary service not configured"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/reflections/summary [POST]
func (h *handler) Summarize(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processSummarizeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Summarize(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Summarize: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSummarizeResp(output))
}
