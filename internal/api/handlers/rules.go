package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// RuleLister lists alert rules.
type RuleLister interface {
	AlertRules(ctx context.Context) ([]domain.AlertRule, error)
}

// RulesHandler serves /api/v1/alert-rules.
type RulesHandler struct {
	rules RuleLister
}

// NewRulesHandler creates a new RulesHandler.
func NewRulesHandler(r RuleLister) *RulesHandler {
	return &RulesHandler{rules: r}
}

// ListRulesOutput is the response for listing alert rules.
type ListRulesOutput struct {
	Body []domain.AlertRule
}

// List returns every alert rule.
func (h *RulesHandler) List(ctx context.Context, _ *struct{}) (*ListRulesOutput, error) {
	rules, err := h.rules.AlertRules(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list alert rules: " + err.Error())
	}
	if rules == nil {
		rules = []domain.AlertRule{}
	}
	return &ListRulesOutput{Body: rules}, nil
}

// RegisterRuleRoutes registers alert rule endpoints with the Huma API.
func RegisterRuleRoutes(api huma.API, h *RulesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-alert-rules",
		Method:      http.MethodGet,
		Path:        "/api/v1/alert-rules",
		Summary:     "List alert rules",
		Description: "Returns the configured alert rules. Evaluation uses fixed thresholds; rules are informational.",
		Tags:        []string{"rules"},
	}, h.List)
}
