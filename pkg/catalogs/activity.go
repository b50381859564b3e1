package catalogs

// Scope is the inclusion scope of a restorative activity.
type Scope string

// Scope values. Care management activities carry no scope.
const (
	ScopeIncluded Scope = "Included"
	ScopeExcluded Scope = "Excluded"
	ScopeNone     Scope = ""
)

// Activity is one record of an activity catalog.
type Activity struct {
	Category string `json:"Category" yaml:"category"`
	Activity string `json:"Activity" yaml:"activity"`
	Scope    Scope  `json:"Scope,omitempty" yaml:"scope,omitempty"`
}

// AppendStrings appends the activity's strings to dst.
func (a Activity) AppendStrings(dst []string) []string {
	return append(dst, a.Category, a.Activity, string(a.Scope))
}
