package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dayflowhq/dayflow_backend/config"
	"github.com/dayflowhq/dayflow_backend/models"
	"github.com/dayflowhq/dayflow_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps model errors onto HTTP statuses:
// validation and parse failures are the caller's fault (400), missing or
// foreign-owned records are 404, everything else is a 500 with the detail
// kept in the server log.
func respondError(c *gin.Context, module string, funcName string, err error) {
	switch {
	case utils.IsValidationError(err) || errors.Is(err, models.ErrParseFailure):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "record not found"})
	default:
		config.LogError(config.GetLogger(), module, funcName, "request failed", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}

// respondBindError turns gin binding failures into field->tag maps where the
// input carried binding tags, and a plain message otherwise.
func respondBindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  utils.ProcessValidationErrors(err),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
}

func pathIntParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
