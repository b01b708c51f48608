package constant

import "fmt"

// Role is the professional role a chat session is scoped to.
// The set is closed; every guardrail and rewrite decision branches on it.
type Role string

const (
	RoleProductLead      Role = "Product Lead"
	RoleTechLead         Role = "Tech Lead"
	RoleComplianceLead   Role = "Compliance Lead"
	RoleBankAllianceLead Role = "Bank Alliance Lead"
)

// AllRoles lists every role in presentation order.
var AllRoles = []Role{
	RoleProductLead,
	RoleTechLead,
	RoleComplianceLead,
	RoleBankAllianceLead,
}

// roleDescriptions feeds the guardrail dispatcher prompt. Keep these detailed:
// the LLM routes questions by contrasting them against each other.
var roleDescriptions = map[Role]string{
	RoleProductLead:      "Focuses on product features, business strategy, user experience, market requirements, user limits, transaction rules, and delegation of product-related authority. They are concerned with the 'what' and 'why' of the product.",
	RoleTechLead:         "Focuses on technical implementation, system architecture, API performance, database queries, code snippets, software bugs, and infrastructure stability. They are concerned with the 'how' of the product's engineering.",
	RoleComplianceLead:   "Focuses on regulatory adherence, legal standards, risk management, financial compliance (like KYC), audit procedures, and data privacy. They ensure the product operates within legal and ethical boundaries.",
	RoleBankAllianceLead: "Focuses on relationships with partner banks, partnership agreements, Service Level Agreements (SLAs), and the business/technical integration with financial partners.",
}

// ParseRole validates a raw role string coming from the transport layer.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleDescriptions[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Description returns the human-readable responsibility summary for the role.
func (r Role) Description() string {
	return roleDescriptions[r]
}

func (r Role) String() string {
	return string(r)
}
