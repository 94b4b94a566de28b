package client

import (
	"context"
	"net/http"
	"net/url"

	"tasktrack/domain/dto"
)

type PrioritiesAPI struct {
	c *Client
}

// List one config per priority level, Bassa first
func (p *PrioritiesAPI) List(ctx context.Context) ([]dto.PriorityConfigResponse, error) {
	var configs []dto.PriorityConfigResponse
	if err := p.c.get(ctx, "/priorities", nil, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// ReplaceReminders the server drops every reminder of the config and stores this set
func (p *PrioritiesAPI) ReplaceReminders(ctx context.Context, configID string, reminders []dto.ReminderInput) (*dto.PriorityConfigResponse, error) {
	if reminders == nil {
		reminders = []dto.ReminderInput{}
	}

	var config dto.PriorityConfigResponse
	path := "/priorities/" + url.PathEscape(configID) + "/reminders"
	if err := p.c.send(ctx, http.MethodPut, path, dto.ReplaceRemindersRequest{Reminders: reminders}, &config); err != nil {
		return nil, err
	}
	return &config, nil
}
