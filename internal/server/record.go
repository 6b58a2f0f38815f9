package server

import (
	"net/http"

	recorddomain "github.com/dairydesk/dairydesk/internal/record/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) RecordDelivery(c *gin.Context) {
	var req recorddomain.RecordDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}

	item, err := s.recordSvc.Record(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (s *Server) ListRecords(c *gin.Context) {
	var req recorddomain.ListRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}

	items, err := s.recordSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}
