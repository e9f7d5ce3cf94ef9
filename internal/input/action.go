package input

// ActionSource indicates where an action originated.
type ActionSource uint8

const (
	// SourceCommand is an editor command invocation.
	SourceCommand ActionSource = iota
	// SourceCLI is the command line tool.
	SourceCLI
	// SourceScript is a Lua script.
	SourceScript
)

// String returns the source name.
func (s ActionSource) String() string {
	switch s {
	case SourceCommand:
		return "command"
	case SourceCLI:
		return "cli"
	case SourceScript:
		return "script"
	default:
		return "unknown"
	}
}

// Namespace prefixes every easyprint action name.
const Namespace = "easyprint"

// Document action names.
const (
	ActionComment       = Namespace + ".comment"
	ActionUncomment     = Namespace + ".uncomment"
	ActionToggleComment = Namespace + ".toggleComment"
	ActionDelete        = Namespace + ".delete"
	ActionJumpPrevious  = Namespace + ".jumpPrevious"
	ActionJumpNext      = Namespace + ".jumpNext"
	ActionInitPython2   = Namespace + ".initPython2"
)

// PrintAction returns the action name that inserts statements of kind.
func PrintAction(kind string) string {
	return Namespace + "." + kind
}

// ActionArgs holds arguments for an action.
type ActionArgs struct {
	// Text overrides the resolved expressions when non-empty.
	Text string

	// Extra holds additional key-value pairs for extensibility.
	Extra map[string]interface{}
}

// Get retrieves a value from Extra.
func (a ActionArgs) Get(key string) (interface{}, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetString retrieves a string value from Extra.
func (a ActionArgs) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an int value from Extra.
func (a ActionArgs) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// GetBool retrieves a bool value from Extra.
func (a ActionArgs) GetBool(key string) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the command identifier (e.g., "easyprint.print").
	Name string

	// Args contains command-specific arguments.
	Args ActionArgs

	// Source indicates where this action originated.
	Source ActionSource
}

// WithExtra returns a copy of the action with an extra argument set.
func (a Action) WithExtra(key string, value interface{}) Action {
	extra := make(map[string]interface{}, len(a.Args.Extra)+1)
	for k, v := range a.Args.Extra {
		extra[k] = v
	}
	extra[key] = value
	a.Args.Extra = extra
	return a
}
