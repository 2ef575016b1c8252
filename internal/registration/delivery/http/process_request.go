package http

import (
	"github.com/gin-gonic/gin"

	"push-to-memory/internal/model"
	pkgErrors "push-to-memory/pkg/errors"
)

func (h *handler) processScope(c *gin.Context) (model.Scope, error) {
	sc, ok := model.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, pkgErrors.ErrUnauthorized
	}
	return sc, nil
}

// processCreateReq binds and validates the create registration body.
func (h *handler) processCreateReq(c *gin.Context) (createReq, model.Scope, error) {
	var req createReq
	sc, err := h.processScope(c)
	if err != nil {
		return req, sc, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, sc, err
	}
	return req, sc, req.validate()
}

// processDeleteReq binds and validates the delete registration body.
func (h *handler) processDeleteReq(c *gin.Context) (deleteReq, model.Scope, error) {
	var req deleteReq
	sc, err := h.processScope(c)
	if err != nil {
		return req, sc, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, sc, err
	}
	return req, sc, req.validate()
}

func (h *handler) processListSourcesReq(c *gin.Context) (listSourcesReq, error) {
	var req listSourcesReq
	if _, err := h.processScope(c); err != nil {
		return req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
