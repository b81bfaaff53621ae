// internal/workers/venue/validate-event-requirement/handler.go
package validateeventrequirement

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/common/metrics"
	"venue-intelligence/internal/common/validation"
	"venue-intelligence/internal/models"
	"venue-intelligence/pkg/registry"
)

const TaskType = "validate-event-requirement"

type Handler struct {
	config *Config
	schema map[string]interface{}
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, reg *registry.ActivityRegistry, log logger.Logger) (*Handler, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if reg == nil {
		var err error
		if reg, err = registry.Default(); err != nil {
			return nil, err
		}
	}
	schema, err := reg.InputSchema(TaskType)
	if err != nil {
		return nil, err
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		schema: schema,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, []byte(job.Variables))
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(_ context.Context, variables []byte) (*Output, error) {
	result, err := validation.ValidateJSON(h.schema, variables)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return h.invalid(nil, result.GetErrorMessages())
	}

	var input Input
	if err := json.Unmarshal(variables, &input); err != nil {
		return h.invalid(nil, []string{fmt.Sprintf("parse eventRequirement: %v", err)})
	}

	req := input.EventRequirement.Normalized()
	if err := req.Validate(); err != nil {
		stdErr, _ := apperrors.AsStandard(err)
		return h.invalid(&req, strings.Split(stdErr.Details, "; "))
	}

	h.logger.Info("requirement valid", map[string]interface{}{
		"city":          req.City,
		"eventType":     req.EventType,
		"attendeeCount": req.AttendeeCount,
	})

	return &Output{
		RequirementValid: true,
		EventRequirement: req,
		ValidationErrors: []string{},
	}, nil
}

func (h *Handler) invalid(req *models.EventRequirement, problems []string) (*Output, error) {
	h.logger.Info("requirement invalid", map[string]interface{}{
		"problems": problems,
	})
	if h.config.ThrowOnInvalid {
		return nil, apperrors.NewValidationError(strings.Join(problems, "; "))
	}

	out := &Output{RequirementValid: false, ValidationErrors: problems}
	if req != nil {
		out.EventRequirement = *req
	}
	return out, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.Normalize(err).Code)).Inc()
	h.errors.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, variables []byte) (*Output, error) {
	return h.execute(ctx, variables)
}
