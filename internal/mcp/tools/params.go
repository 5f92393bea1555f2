package tools

import (
	"encoding/json"
	"errors"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/job"
	"github.com/honeycarbs/jobapply-gateway/internal/mcp"
)

const defaultLimit = 10

func decode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return mcp.InvalidParameter("invalid parameters: %v", err)
	}
	return nil
}

// classify turns domain errors into caller-facing error kinds
func classify(err error, jobID domain.JobID) error {
	var upstream *job.UpstreamError
	switch {
	case errors.Is(err, job.ErrNotFound):
		e := mcp.NotFound("Job with ID %s not found", jobID)
		e.Err = err
		return e
	case errors.Is(err, job.ErrSourceUnavailable):
		e := mcp.NotInitialized("Job source")
		e.Err = err
		return e
	case errors.As(err, &upstream):
		return mcp.Upstream(err)
	default:
		return err
	}
}

func stringProp(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func limitProp(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: description,
		Default:     json.RawMessage(`10`),
	}
}

func enumProp[T ~string](description string, values []T) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}
	return &jsonschema.Schema{Type: "string", Description: description, Enum: enum}
}
