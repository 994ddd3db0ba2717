// Package handlers implements the HTTP surface of the dashboard API. Each
// domain gets a handler struct holding its store; role checks live in the
// access tables, error mapping in respondError.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"safetysight/lifecycle"
	"safetysight/store"
)

// Uploader stores one attachment and returns its public URL. Satisfied by
// *storage.Uploader in production; tests substitute a fake so the
// upload-before-write ordering can be exercised without a bucket.
type Uploader interface {
	Upload(ctx context.Context, dir, filename, contentType string, r io.Reader) (string, error)
}

// respondError maps the error taxonomy onto HTTP statuses. Validation stays
// a client error, illegal transitions are conflicts, backend failures are
// bad gateways; nothing here is fatal to the process.
func respondError(c *gin.Context, err error) {
	var (
		validation *store.ValidationError
		notFound   *store.NotFoundError
		transition *lifecycle.InvalidTransitionError
		upload     *store.AttachmentUploadError
		write      *store.WriteError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
	case errors.As(err, &upload):
		c.JSON(http.StatusBadGateway, gin.H{"error": "attachment upload failed"})
	case errors.As(err, &write):
		c.JSON(http.StatusBadGateway, gin.H{"error": "saving the record failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
}

// statusRequest is the body of every update-status call.
type statusRequest struct {
	Status string `json:"status" binding:"required"`
}
