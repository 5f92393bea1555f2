package tools

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
)

// ApplicationHistoryParams defines the arguments for the get_application_history tool
type ApplicationHistoryParams struct {
	Limit *int `json:"limit,omitempty"`
}

// ApplicationHistoryResult is returned by get_application_history
type ApplicationHistoryResult struct {
	Applications []domain.ApplicationRecord `json:"applications"`
	Count        int                        `json:"count"`
	Total        int                        `json:"total"`
}

type ApplicationHistory struct {
	apps ApplicationService
}

func NewApplicationHistory(apps ApplicationService) *ApplicationHistory {
	return &ApplicationHistory{apps: apps}
}

func (t *ApplicationHistory) Name() string {
	return "get_application_history"
}

func (t *ApplicationHistory) Description() string {
	return "Get history of job applications made through this tool"
}

func (t *ApplicationHistory) Parameters() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"limit": limitProp("Maximum number of applications to return"),
		},
	}
}

func (t *ApplicationHistory) Execute(_ context.Context, raw json.RawMessage) (any, error) {
	var p ApplicationHistoryParams
	if err := decode(raw, &p); err != nil {
		return nil, err
	}

	limit := defaultLimit
	if p.Limit != nil {
		limit = *p.Limit
	}

	recs, total := t.apps.History(limit)
	if recs == nil {
		recs = []domain.ApplicationRecord{}
	}
	return ApplicationHistoryResult{Applications: recs, Count: len(recs), Total: total}, nil
}
