package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/middleware"
)

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id.String(), nil
}

// parseOptionalID parses a UUID query value, returning nil when it is empty.
func parseOptionalID(value, name string) (*string, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+name)
	}
	s := id.String()
	return &s, nil
}

// parseFlexibleTime accepts RFC3339 timestamps or plain YYYY-MM-DD dates
// (midnight UTC).
func parseFlexibleTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// dateOrNow parses the "date" query parameter, defaulting to the current time.
func dateOrNow(c *gin.Context) (time.Time, error) {
	v := c.Query("date")
	if v == "" {
		return time.Now(), nil
	}
	t, err := parseFlexibleTime(v)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}

// respondWithError writes err in the shared error envelope.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}
