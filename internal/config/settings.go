package config

import "github.com/dshills/easyprint/internal/config/registry"

// Namespace prefixes easyprint keys in editor settings JSON.
const Namespace = "pythonEasyPrint"

// Setting paths.
const (
	KeyIncludeParentCall  = "hover.includeParentCall"
	KeyIncludeParentheses = "hover.includeParentheses"
	KeyMultipleStatements = "multipleStatements"
	KeyPrintToNewLine     = "prints.printToNewLine"
	KeyAddCustomMessage   = "prints.addCustomMessage"
	KeyCustomStatement    = "prints.customStatement"
	KeyCustomSymbol       = "prints.customSymbol"
	KeyCustomLogName      = "logging.customLogName"
	KeyUseRepr            = "logging.useRepr"
	KeyTabSize            = "editor.tabSize"
	KeyInsertSpaces       = "editor.insertSpaces"
)

// DefaultSymbol marks lines inserted by print statements.
const DefaultSymbol = "➡"

// RegisterSettings registers every easyprint setting with its default.
func RegisterSettings(r *registry.Registry) {
	r.MustRegister(registry.Setting{
		Path:        KeyIncludeParentCall,
		Type:        registry.TypeBool,
		Default:     true,
		Description: "Extend a hovered name through its dotted parents, e.g. foo.bar.baz.",
	})
	r.MustRegister(registry.Setting{
		Path:        KeyIncludeParentheses,
		Type:        registry.TypeBool,
		Default:     true,
		Description: "Extend a hovered name through its call arguments, e.g. foo(bar).",
	})
	r.MustRegister(registry.Setting{
		Path:        KeyMultipleStatements,
		Type:        registry.TypeBool,
		Default:     true,
		Description: "Print every expression of a selection such as `foo, bar` separately.",
	})
	r.MustRegister(registry.Setting{
		Path:        KeyPrintToNewLine,
		Type:        registry.TypeBool,
		Default:     false,
		Description: "Print the value on a new line after the label.",
	})
	r.MustRegister(registry.Setting{
		Path:        KeyAddCustomMessage,
		Type:        registry.TypeString,
		Default:     "",
		Description: "Message added to print statements. Supports %f %l %F %w %t.",
	})
	r.MustRegister(registry.Setting{
		Path:        KeyCustomStatement,
		Type:        registry.TypeString,
		Default:     "",
		Description: "Template for the custom command. {text} is the expression.",
	})
	r.MustRegister(registry.Setting{
		Path:        KeyCustomSymbol,
		Type:        registry.TypeString,
		Default:     DefaultSymbol,
		Description: "Marker used to recognize inserted prints.",
	})
	r.MustRegister(registry.Setting{
		Path:        KeyCustomLogName,
		Type:        registry.TypeString,
		Default:     "",
		Description: "Logger object used by logging statements (default: logging).",
	})
	r.MustRegister(registry.Setting{
		Path:        KeyUseRepr,
		Type:        registry.TypeBool,
		Default:     true,
		Description: "Wrap logged values in repr().",
	})
	r.MustRegister(registry.Setting{
		Path:        KeyTabSize,
		Type:        registry.TypeInt,
		Default:     4,
		Description: "Spaces per indentation level.",
		Minimum:     registry.MinValue(1),
	})
	r.MustRegister(registry.Setting{
		Path:        KeyInsertSpaces,
		Type:        registry.TypeBool,
		Default:     true,
		Description: "Indent with spaces instead of tabs.",
	})
}
