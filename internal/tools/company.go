package tools

import (
	"context"
	"fmt"

	"github.com/careerdev/jobagent/internal/research"
)

type researchCompanyTool struct {
	client *research.Client
}

// NewResearchCompanyTool exposes company profile lookups.
func NewResearchCompanyTool(client *research.Client) Tool {
	return &researchCompanyTool{client: client}
}

func (t *researchCompanyTool) Name() string {
	return "research_company"
}

func (t *researchCompanyTool) Description() string {
	return "Fetch the profile of a company"
}

func (t *researchCompanyTool) Required() []string {
	return []string{"company_name"}
}

func (t *researchCompanyTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	name, ok := params["company_name"].(string)
	if !ok {
		return nil, fmt.Errorf("company_name must be a string")
	}

	domain, _ := params["domain"].(string)

	return t.client.Lookup(ctx, name, domain)
}
