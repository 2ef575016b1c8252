package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"push-to-memory/internal/reflection"
	"push-to-memory/internal/registration"
)

const (
	msgVerified       = "Webhook verified successfully"
	msgPushRecorded   = "Push reflection created successfully"
	msgProcessed      = "Webhook processed successfully"
	errNotRegistered  = "Webhook not registered"
	errBadSignature   = "Invalid signature"
	errBadPayload     = "Invalid payload"
	errRateLimited    = "Rate limit exceeded"
	errForbidden      = "Forbidden"
	errInternalServer = "Internal server error"
)

// HandleGitHubWebhook godoc
// @Summary     GitHub webhook receiver
// @Description Verifies the delivery against the registration of its organization or repository and records pushes.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       X-GitHub-Event      header string true "Event type"
// @Param       X-Hub-Signature-256 header string true "sha256=<hex hmac>"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} map[string]string
// @Failure     401 {object} map[string]string
// @Failure     404 {object} map[string]string
// @Failure     429 {object} map[string]string
// @Router      /api/webhook [POST]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()
	eventType := c.GetHeader(HeaderEvent)
	delivery := c.GetHeader(HeaderDelivery)

	if err := h.security.ValidateIPAddress(c.ClientIP()); err != nil {
		h.l.Warnf(ctx, "webhook %s rejected: %v", delivery, err)
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden})
		return
	}

	// Signatures are computed over the exact bytes received.
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadBytes))
	if err != nil {
		h.l.Warnf(ctx, "webhook %s: read body: %v", delivery, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadPayload})
		return
	}

	sources, err := SourcesFromPayload(body)
	if err != nil {
		h.l.Warnf(ctx, "webhook %s event=%s: %v", delivery, eventType, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadPayload})
		return
	}

	reg, err := h.lookup(ctx, sources)
	if err != nil {
		if errors.Is(err, registration.ErrRegistrationNotFound) {
			h.l.Warnf(ctx, "webhook %s event=%s: no registration for %s", delivery, eventType, describe(sources))
			c.JSON(http.StatusNotFound, gin.H{"error": errNotRegistered})
			return
		}
		if errors.Is(err, registration.ErrInvalidSource) {
			h.l.Warnf(ctx, "webhook %s event=%s: %v", delivery, eventType, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": errBadPayload})
			return
		}
		h.l.Errorf(ctx, "webhook %s event=%s: lookup %s: %v", delivery, eventType, describe(sources), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	if !VerifySignature(body, c.GetHeader(HeaderSignature), reg.Secret) {
		h.l.Warnf(ctx, "webhook %s source=%s event=%s: signature mismatch", delivery, reg.ID, eventType)
		c.JSON(http.StatusUnauthorized, gin.H{"error": errBadSignature})
		return
	}

	// Only verified deliveries count against the limit.
	if err := h.security.CheckRateLimit(reg.ID); err != nil {
		h.l.Warnf(ctx, "webhook %s source=%s: %v", delivery, reg.ID, err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": errRateLimited})
		return
	}

	event, err := ParseEvent(eventType, body)
	if err != nil {
		h.l.Warnf(ctx, "webhook %s source=%s event=%s: %v", delivery, reg.ID, eventType, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadPayload})
		return
	}

	switch e := event.(type) {
	case PingEvent:
		h.l.Infof(ctx, "webhook %s source=%s: ping for hook %d", delivery, reg.ID, e.HookID)
		c.JSON(http.StatusOK, gin.H{"message": msgVerified})
	case PushEvent:
		h.handlePush(c, reg, e)
	default:
		h.l.Infof(ctx, "webhook %s source=%s: ignoring event %s", delivery, reg.ID, eventType)
		c.JSON(http.StatusOK, gin.H{"message": msgProcessed})
	}
}

func (h *Handler) handlePush(c *gin.Context, reg registration.Registration, e PushEvent) {
	ctx := c.Request.Context()

	if len(e.Commits) == 0 {
		h.l.Infof(ctx, "webhook source=%s repo=%s: push without commits", reg.ID, e.RepositoryName)
		c.JSON(http.StatusOK, gin.H{"message": msgProcessed})
		return
	}

	out, err := h.reflectionUC.Build(ctx, reflection.BuildInput{
		OwnerUserID:    reg.OwnerUserID,
		RepositoryName: e.RepositoryName,
		Commits:        e.Commits,
	})
	if err != nil {
		if errors.Is(err, reflection.ErrInvalidRecordKey) {
			h.l.Warnf(ctx, "webhook source=%s repo=%s commits=%d: %v", reg.ID, e.RepositoryName, len(e.Commits), err)
			c.JSON(http.StatusBadRequest, gin.H{"error": errBadPayload})
			return
		}
		h.l.Errorf(ctx, "webhook source=%s repo=%s commits=%d: build: %v", reg.ID, e.RepositoryName, len(e.Commits), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	if out.Created {
		h.dispatcher.Notify(reg.OwnerUserID, e.RepositoryName, out.ID)
	}

	c.JSON(http.StatusOK, gin.H{"message": msgPushRecorded, "reflectionId": out.ID})
}

// lookup prefers the organization registration and falls back to the repository one.
func (h *Handler) lookup(ctx context.Context, s Sources) (registration.Registration, error) {
	if s.Organization.Kind != "" {
		reg, err := h.registrationUC.Lookup(ctx, s.Organization)
		if err == nil || !errors.Is(err, registration.ErrRegistrationNotFound) {
			return reg, err
		}
	}
	if s.Repository.Kind != "" {
		return h.registrationUC.Lookup(ctx, s.Repository)
	}
	return registration.Registration{}, registration.ErrRegistrationNotFound
}

func describe(s Sources) string {
	switch {
	case s.Organization.Kind != "" && s.Repository.Kind != "":
		return s.Organization.Identifier() + " or " + s.Repository.Identifier()
	case s.Organization.Kind != "":
		return s.Organization.Identifier()
	default:
		return s.Repository.Identifier()
	}
}
