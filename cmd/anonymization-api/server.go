package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/anonymize"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/audit"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/pipeline"
)

var errNoAuditStore = errors.New("no audit store configured")

type HttpError struct {
	code int
	error
}

func (e HttpError) Error() string {
	return e.error.Error()
}

func NewHttpError(code int, err error) HttpError {
	return HttpError{
		code:  code,
		error: err,
	}
}

type server struct {
	controller controller
}

func (s server) RegisterRoutes(r *gin.Engine) {
	r.POST("/anonymize", validateBody, s.Anonymize)
	r.POST("/entities", validateBody, s.Entities)
	r.GET("/audit/:id", s.AuditRecord)
	r.GET("/healthz", s.Health)
}

func (s server) Anonymize(c *gin.Context) {
	var req anonymizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, NewHttpError(http.StatusBadRequest, errors.New("invalid request body - must be valid json")))
		return
	}

	result, err := s.controller.Anonymize(req)
	if err != nil {
		handleError(c, classify(err))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s server) Entities(c *gin.Context) {
	var req entitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, NewHttpError(http.StatusBadRequest, errors.New("invalid request body - must be valid json")))
		return
	}

	entities, err := s.controller.Entities(req)
	if err != nil {
		handleError(c, classify(err))
		return
	}

	c.JSON(http.StatusOK, entities)
}

func (s server) AuditRecord(c *gin.Context) {
	record, err := s.controller.AuditRecord(c.Param("id"))
	if err != nil {
		handleError(c, classify(err))
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s server) Health(c *gin.Context) {
	if !s.controller.Ready() {
		c.JSON(http.StatusServiceUnavailable, map[string]interface{}{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
}

// classify maps library errors onto http status codes. Anything unknown, such as a
// failing value generator or audit store, is a 500.
func classify(err error) error {
	switch {
	case errors.Is(err, anonymize.ErrInvalidEntity), errors.Is(err, pipeline.ErrNoExtractor):
		return NewHttpError(http.StatusBadRequest, err)
	case errors.Is(err, audit.ErrNotFound):
		return NewHttpError(http.StatusNotFound, err)
	case errors.Is(err, errNoAuditStore):
		return NewHttpError(http.StatusNotImplemented, err)
	default:
		return err
	}
}

func validateBody(c *gin.Context) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		handleError(c, NewHttpError(http.StatusBadRequest, errors.New("request body missing")))
	} else if _, err := c.Request.Body.Read(nil); err == io.EOF {
		handleError(c, NewHttpError(http.StatusBadRequest, errors.New("request body missing")))
	} else {
		c.Next()
	}
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		abort(c, http.StatusInternalServerError, errors.New("abort called on nil error"))
		return
	}
	switch e := err.(type) {
	case HttpError:
		abort(c, e.code, e.error)
	default:
		abort(c, http.StatusInternalServerError, e)
	}
}

func abort(c *gin.Context, code int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, map[string]interface{}{
		"status":  code,
		"message": err.Error(),
	})
}
