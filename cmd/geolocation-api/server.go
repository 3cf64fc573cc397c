package main

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/radixplore/geolocation/lib/mention"
)

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
	r.POST("/geolocate", validateBody, s.Geolocate)
	r.GET("/ready", s.Ready)
}

func (s server) Geolocate(c *gin.Context) {
	var mentions []mention.Mention
	if err := c.ShouldBindJSON(&mentions); err != nil {
		handleError(c, NewHttpError(400, errors.New("request body must be a json array of mentions")))
		return
	}

	c.JSON(200, s.controller.Geolocate(c.Request.Context(), mentions))
}

func (s server) Ready(c *gin.Context) {
	if !s.controller.Ready() {
		c.JSON(503, map[string]interface{}{"ready": false})
		return
	}
	c.JSON(200, map[string]interface{}{"ready": true})
}

func validateBody(c *gin.Context) {
	if c.Request.Body == nil {
		handleError(c, NewHttpError(400, errors.New("request body missing")))
	} else if _, err := c.Request.Body.Read(nil); err == io.EOF {
		handleError(c, NewHttpError(400, errors.New("request body missing")))
	} else {
		c.Next()
	}
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		abort(c, 500, errors.New("abort called on nil error"))
	}
	switch e := err.(type) {
	case HttpError:
		abort(c, e.code, e.error)
	default:
		abort(c, 500, e)
	}
}

func abort(c *gin.Context, code int, err error) {
	switch {
	case code <= 500:
		c.JSON(code, map[string]interface{}{
			"status":  code,
			"message": err.Error(),
		})
		c.Abort()
	default:
		_ = c.AbortWithError(code, err)
	}
}
