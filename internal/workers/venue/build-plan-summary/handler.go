// internal/workers/venue/build-plan-summary/handler.go
package buildplansummary

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
	"venue-intelligence/internal/plan"
)

const TaskType = "build-plan-summary"

type Handler struct {
	config  *Config
	service *plan.Service
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, service *plan.Service, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		service: service,
		errors:  apperrors.NewErrorHandler(log),
		logger:  log,
	}
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

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, apperrors.NewValidationError(fmt.Sprintf("parse job variables: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Venue.ID == "" {
		return nil, apperrors.NewValidationError("venue id is required")
	}
	if err := h.validateRecipients(input.Recipients); err != nil {
		return nil, err
	}

	summary, receipts, err := h.service.Create(ctx, input.Venue, input.EventRequirement, input.Recipients)
	if err != nil {
		return nil, err
	}

	h.logger.Info("plan summary built", map[string]interface{}{
		"planId":     summary.ID,
		"venueId":    input.Venue.ID,
		"recipients": len(receipts),
	})

	return &Output{
		PlanID:        summary.ID,
		ShareURL:      summary.ShareURL,
		PlanSummary:   summary,
		ShareReceipts: receipts,
	}, nil
}

func (h *Handler) validateRecipients(recipients []models.ShareRecipient) error {
	if len(recipients) > h.config.MaxRecipients {
		return apperrors.NewValidationError(fmt.Sprintf("at most %d recipients are allowed, got %d", h.config.MaxRecipients, len(recipients)))
	}

	var problems []string
	for i, r := range recipients {
		switch r.Channel {
		case models.ShareChannelEmail:
			if !validation.ValidateEmail(r.Address) {
				problems = append(problems, fmt.Sprintf("recipients[%d]: invalid email address", i))
			}
		case models.ShareChannelSMS:
			if !validation.ValidatePhone(r.Address) {
				problems = append(problems, fmt.Sprintf("recipients[%d]: phone must be in E.164 format", i))
			}
		default:
			problems = append(problems, fmt.Sprintf("recipients[%d]: unknown channel %q", i, r.Channel))
		}
	}
	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
