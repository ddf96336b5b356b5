package permission

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed model.conf
var modelText string

//go:embed policies.yaml
var defaultPolicies []byte

// Resources and actions checked by the HTTP layer.
const (
	ResourceConsentRequest  = "consent_request"
	ResourceBooking         = "booking"
	ResourceAuditLog        = "audit_log"
	ResourcePrivacyDeletion = "privacy_deletion"

	ActionCreate = "create"
	ActionRead   = "read"
)

type policyFile struct {
	Roles map[string]rolePolicy `yaml:"roles"`
}

type rolePolicy struct {
	Inherits    []string            `yaml:"inherits"`
	Permissions map[string][]string `yaml:"permissions"`
}

// parsePolicies flattens the YAML into casbin p and g rules in a stable order.
func parsePolicies(raw []byte) (policies [][]string, groupings [][]string, err error) {
	var file policyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if len(file.Roles) == 0 {
		return nil, nil, fmt.Errorf("policy file defines no roles")
	}

	roles := make([]string, 0, len(file.Roles))
	for role := range file.Roles {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	for _, role := range roles {
		rp := file.Roles[role]
		for _, parent := range rp.Inherits {
			if _, ok := file.Roles[parent]; !ok {
				return nil, nil, fmt.Errorf("role %s inherits unknown role %s", role, parent)
			}
			groupings = append(groupings, []string{role, parent})
		}

		resources := make([]string, 0, len(rp.Permissions))
		for resource := range rp.Permissions {
			resources = append(resources, resource)
		}
		sort.Strings(resources)
		for _, resource := range resources {
			for _, action := range rp.Permissions[resource] {
				policies = append(policies, []string{role, resource, action})
			}
		}
	}

	return policies, groupings, nil
}
