// internal/workers/venue/filter-venues/handler.go
package filtervenues

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/common/metrics"
	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/filter"
	"venue-intelligence/internal/venue/pagination"
)

const TaskType = "filter-venues"

type Handler struct {
	config *Config
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
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

func decodeFilters(raw json.RawMessage) (models.FilterState, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return filter.Cleared(), nil
	}
	var fs models.FilterState
	if err := json.Unmarshal(raw, &fs); err != nil {
		return models.FilterState{}, apperrors.NewInvalidFilterFormatError(err.Error())
	}
	return fs, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	fs, err := decodeFilters(input.Filters)
	if err != nil {
		return nil, err
	}

	browser := pagination.NewBrowser(pagination.Config{
		PageSize:  h.config.PageSize,
		Increment: h.config.Increment,
	}, input.Venues)

	window, err := browser.SetFilters(fs)
	if err != nil {
		return nil, err
	}
	for i := 0; i < input.LoadMoreCount && window.HasMore; i++ {
		if window, err = browser.LoadMore(ctx); err != nil {
			return nil, err
		}
	}

	h.logger.Info("filters applied", map[string]interface{}{
		"inputCount": len(input.Venues),
		"matched":    window.Total,
		"visible":    window.Visible,
	})

	return &Output{Window: window, Facets: filter.FacetOptions()}, nil
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
