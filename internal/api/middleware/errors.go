package middleware

import (
	"errors"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

var ErrEmptyEventID = errors.New("event_id is required")

type ErrorResponse struct {
	Error string `json:"error" description:"Error message"`
	Code  int    `json:"code" description:"HTTP status code"`
}

func HandleError(resp *restful.Response, err error, status int) {
	if writeErr := resp.WriteHeaderAndEntity(status, ErrorResponse{
		Error: err.Error(),
		Code:  status,
	}); writeErr != nil {
		log.Error().Err(writeErr).Msg("Failed to write error response")
	}
}
