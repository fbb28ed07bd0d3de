package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vit0-9/registrar_api/models"
	"github.com/vit0-9/registrar_api/pkg/registration"
)

const (
	msgDomainsRequired = "Please provide an array of domain names to check"
	msgUnknownError    = "An unknown error occurred"
)

// DomainService is what the domain handlers need from the registration layer.
type DomainService interface {
	CheckAvailability(ctx context.Context, domains []string) ([]registration.Availability, error)
	RegisterIfAvailable(ctx context.Context, req registration.Request) (registration.Result, error)
}

// DomainHandlers groups the availability and registration endpoints.
type DomainHandlers struct {
	service DomainService
	logger  *log.Logger
}

func NewDomainHandlers(service DomainService, logger *log.Logger) *DomainHandlers {
	if logger == nil {
		logger = log.Default()
	}
	return &DomainHandlers{service: service, logger: logger}
}

// CheckDomainsHandler godoc
// @Summary      Check domain availability
// @Description  Asks the registrar whether each domain can be registered. Results keep the input order.
// @Tags         Domains
// @Accept       json
// @Produce      json
// @Param        checkRequest body models.CheckDomainsRequest true "Domains to check"
// @Success      200 {object} models.SuccessResponse{data=[]registration.Availability}
// @Failure      400 {object} models.FailureResponse "Error: domains missing, not an array or empty"
// @Failure      500 {object} models.FailureResponse "Error: registrar call failed"
// @Router       /check [post]
func (h *DomainHandlers) CheckDomainsHandler(c *gin.Context) {
	var req models.CheckDomainsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if httpErr := bodyError(err); httpErr != nil {
			_ = c.Error(httpErr)
			return
		}
		c.JSON(http.StatusBadRequest, models.FailureResponse{Message: msgDomainsRequired})
		return
	}

	results, err := h.service.CheckAvailability(c.Request.Context(), req.Domains)
	if err != nil {
		h.logger.Printf("ERROR: checking domain availability: %v", err)
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: results})
}

// RegisterDomainHandler godoc
// @Summary      Register a domain
// @Description  Validates the payload, re-checks availability and registers the domain. Whoisguard options default to true unless explicitly false.
// @Tags         Domains
// @Accept       json
// @Produce      json
// @Param        registerRequest body registration.Request true "Registration details"
// @Success      201 {object} models.SuccessResponse "Registrar result passed through unchanged"
// @Failure      400 {object} models.FailureResponse "Error: invalid input or domain not available"
// @Failure      500 {object} models.FailureResponse "Error: registrar call failed"
// @Router       /register [post]
func (h *DomainHandlers) RegisterDomainHandler(c *gin.Context) {
	var req registration.Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		if httpErr := bodyError(err); httpErr != nil {
			_ = c.Error(httpErr)
			return
		}
		c.JSON(http.StatusBadRequest, models.FailureResponse{Message: "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.service.RegisterIfAvailable(c.Request.Context(), req)
	if err != nil {
		if registration.KindOf(err) != registration.KindInvalidInput {
			h.logger.Printf("ERROR: registering domain %q: %v", req.Domain, err)
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: result})
}

// fail writes the failure envelope for a service error.
func (h *DomainHandlers) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), models.FailureResponse{Message: messageFor(err)})
}

func statusFor(err error) int {
	switch registration.KindOf(err) {
	case registration.KindInvalidInput, registration.KindDomainUnavailable:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	var e *registration.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return msgUnknownError
}
