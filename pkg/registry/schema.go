// pkg/registry/schema.go
package registry

// ActivityRegistry describes the service tasks this module implements so
// process designers can wire BPMN models against them.
type ActivityRegistry struct {
	Version    string     `json:"version"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	TaskType     string   `json:"taskType"`
	DisplayName  string   `json:"displayName"`
	Description  string   `json:"description"`
	Inputs       []string `json:"inputs"`
	Outputs      []string `json:"outputs"`
	ErrorCodes   []string `json:"errorCodes"`
	Dependencies []string `json:"dependencies,omitempty"`
}
