package api

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/repetition"
	"github.com/rs/zerolog"
)

const Version = "1.0.0"

type Handler struct {
	executor *executor.Executor
	logger   *zerolog.Logger
}

func NewHandler(executor *executor.Executor, logger *zerolog.Logger) *Handler {
	return &Handler{
		executor: executor,
		logger:   logger,
	}
}

// POST /api/v1/evaluate
// Body: EvaluationRequest
// Returns: EvaluationResult
func (h *Handler) Evaluate(req *restful.Request, resp *restful.Response) {
	var evalRequest models.EvaluationRequest
	if err := req.ReadEntity(&evalRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if evalRequest.EventID == "" {
		middleware.HandleError(resp, middleware.ErrEmptyEventID, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("event_id", evalRequest.EventID).
		Str("event_type", string(evalRequest.EventType)).
		Str("agent_name", evalRequest.Agent.Name).
		Msg("Start evaluation")

	evalResult := h.executor.Execute(req.Request.Context(), evalRequest.Normalize())

	h.logger.Info().
		Str("event_id", evalResult.ID).
		Str("verdict", string(evalResult.Verdict)).
		Float64("confidence", evalResult.Confidence).
		Msg("Evaluation complete")

	if err := resp.WriteHeaderAndEntity(http.StatusOK, evalResult); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write response")
	}
}

// POST /api/v1/repetition
// Body: RepetitionRequest
// Returns: RepetitionResponse
func (h *Handler) Repetition(req *restful.Request, resp *restful.Response) {
	var repRequest models.RepetitionRequest
	if err := req.ReadEntity(&repRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	report := repetition.Analyze(repRequest.Text)

	h.logger.Debug().
		Int("tokens", report.TokenCount).
		Int("longest_run", report.Longest.Len()).
		Msg("Repetition scan complete")

	if err := resp.WriteHeaderAndEntity(http.StatusOK, models.NewRepetitionResponse(report)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write response")
	}
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: Version,
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
