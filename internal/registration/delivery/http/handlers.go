package http

import (
	"github.com/gin-gonic/gin"

	"push-to-memory/pkg/response"
)

// Create godoc
// @Summary     Connect a GitHub source
// @Description Installs a push webhook on the organization or repository and stores the registration. The webhook secret is only returned here.
// @Tags        Registrations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body createReq true "Source and GitHub token"
// @Success     200  {object} createResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Failure     409  {object} response.Resp "Conflict - source already registered"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/registrations [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Create(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newCreateResp(output))
}

// Delete godoc
// @Summary     Disconnect a GitHub source
// @Description Removes the webhook from GitHub and deletes the registration. Disconnecting an unknown source succeeds.
// @Tags        Registrations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body deleteReq true "Source and GitHub token"
// @Success     200  {object} response.Resp "OK"
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     403  {object} response.Resp "Forbidden - registration belongs to another user"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/registrations [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processDeleteReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.Delete(ctx, sc, req.toInput()); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// List godoc
// @Summary     List connected sources
// @Tags        Registrations
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} listResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/registrations [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.List(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListResp(output))
}

// ListSources godoc
// @Summary     List connectable sources
// @Description Lists the organizations and repositories visible to the GitHub token.
// @Tags        Registrations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body listSourcesReq true "GitHub token"
// @Success     200  {object} listSourcesResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/registrations/sources [POST]
func (h *handler) ListSources(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListSourcesReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ListSources(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListSources: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListSourcesResp(output))
}
