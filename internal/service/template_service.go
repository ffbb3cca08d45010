package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"forgeboard/internal/model"
	"forgeboard/internal/repository"
)

// TemplateService manages project templates and turns them into real
// projects. Instantiation creates the project through ProjectService (so the
// project.created event fires and the EVM baseline gets seeded) and then
// materializes the template's Gantt tasks relative to the start date.
type TemplateService struct {
	templates *repository.TemplateRepository
	gantt     *repository.GanttRepository
	projects  *ProjectService
	logger    *zap.Logger
}

func NewTemplateService(
	templates *repository.TemplateRepository,
	gantt *repository.GanttRepository,
	projects *ProjectService,
	logger *zap.Logger,
) *TemplateService {
	return &TemplateService{
		templates: templates,
		gantt:     gantt,
		projects:  projects,
		logger:    logger,
	}
}

func (s *TemplateService) Create(ctx context.Context, t *model.Template) (int64, error) {
	var payload model.TemplatePayload
	if err := json.Unmarshal(t.Payload, &payload); err != nil {
		return 0, fmt.Errorf("%w: template payload does not decode: %v", ErrValidation, err)
	}
	return s.templates.Insert(ctx, t)
}

func (s *TemplateService) Get(ctx context.Context, id int64) (*model.Template, error) {
	return s.templates.FindByID(ctx, id)
}

func (s *TemplateService) List(ctx context.Context) ([]model.Template, error) {
	return s.templates.List(ctx)
}

func (s *TemplateService) Delete(ctx context.Context, id int64) error {
	return s.templates.Delete(ctx, id)
}

// Instantiate creates a project from a template. Task dates are the template
// offsets applied to startDate. Gantt task failures after the project is
// created are logged and skipped rather than rolling the project back.
func (s *TemplateService) Instantiate(ctx context.Context, templateID int64, name, manager string, startDate time.Time) (int64, error) {
	tpl, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return 0, err
	}

	var payload model.TemplatePayload
	if err := json.Unmarshal(tpl.Payload, &payload); err != nil {
		return 0, fmt.Errorf("invalid template payload: %w", err)
	}

	status := payload.Status
	if status == "" {
		status = model.ProjectStatusPlanning
	}

	project := &model.Project{
		Name:        name,
		Description: tpl.Description,
		Status:      status,
		Budget:      payload.Budget,
		StartDate:   startDate,
		Deadline:    startDate.AddDate(0, 0, payload.DurationDays),
		Manager:     manager,
		Tags:        payload.Tags,
	}

	projectID, err := s.projects.Create(ctx, project)
	if err != nil {
		return 0, err
	}

	for _, task := range payload.GanttTasks {
		taskStart := startDate.AddDate(0, 0, task.StartOffsetDays)
		_, err := s.gantt.Insert(ctx, &model.GanttTask{
			ProjectID: projectID,
			Name:      task.Name,
			StartDate: taskStart,
			EndDate:   taskStart.AddDate(0, 0, task.DurationDays),
			Progress:  task.Progress,
		})
		if err != nil {
			s.logger.Warn("Failed to create task from template",
				zap.Int64("project_id", projectID),
				zap.String("task", task.Name),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Project instantiated from template",
		zap.Int64("template_id", templateID),
		zap.Int64("project_id", projectID),
	)
	return projectID, nil
}
