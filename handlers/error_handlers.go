package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vit0-9/registrar_api/models"
)

// HTTPError is an error that carries its own status code. Handlers attach
// it with c.Error and ErrorHandler renders it.
type HTTPError struct {
	Status int
	Err    error
}

func (e *HTTPError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.Status)
	}
	return e.Err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// bodyError classifies JSON decoding failures that mean the body itself is
// unusable (unparsable or too large). It returns nil for shape errors,
// which the handlers answer with their own messages.
func bodyError(err error) *HTTPError {
	var tooLarge *http.MaxBytesError
	var syntax *json.SyntaxError
	switch {
	case errors.As(err, &tooLarge):
		return &HTTPError{Status: http.StatusRequestEntityTooLarge, Err: fmt.Errorf("request entity too large: limit is %d bytes", tooLarge.Limit)}
	case errors.As(err, &syntax), errors.Is(err, io.ErrUnexpectedEOF):
		return &HTTPError{Status: http.StatusBadRequest, Err: err}
	}
	return nil
}

// BodyLimit caps request bodies at n bytes.
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// ErrorHandler renders the last error a handler attached with c.Error as
// {message, error, status}, unless a response was already written.
// Error details are only exposed when dev is true.
func ErrorHandler(dev bool, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Status != 0 {
			status = httpErr.Status
		}
		if status >= http.StatusInternalServerError {
			logger.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(status, errorResponse(err, status, dev))
	}
}

// Recovery turns a panic into a 500 error envelope. gin's recovery
// middleware has already logged the stack by the time it runs.
func Recovery(dev bool) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err, http.StatusInternalServerError, dev))
	}
}

// NotFoundHandler answers unmatched routes.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.APIErrorResponse{
		Message: "Not Found",
		Status:  http.StatusNotFound,
	})
}

func errorResponse(err error, status int, dev bool) models.APIErrorResponse {
	resp := models.APIErrorResponse{
		Message: err.Error(),
		Error:   struct{}{},
		Status:  status,
	}
	if resp.Message == "" {
		resp.Message = http.StatusText(status)
	}
	if dev {
		cause := err
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Err != nil {
			cause = httpErr.Err
		}
		resp.Error = models.ErrorDetail{
			Message: cause.Error(),
			Type:    fmt.Sprintf("%T", cause),
		}
	}
	return resp
}
