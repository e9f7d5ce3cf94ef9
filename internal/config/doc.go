// Package config provides easyprint's configuration.
//
// Values come from stacked layers, higher layers overriding lower:
//
//  1. defaults: the registered settings (lowest priority)
//  2. user: $XDG_CONFIG_HOME/easyprint/config.toml
//  3. workspace: <root>/.easyprint.yaml
//  4. editor: <root>/.vscode/settings.json
//  5. environment: EASYPRINT_* variables and <root>/.env
//  6. session: runtime overrides (highest priority)
//
// Readers see configuration through the Source interface, which offers two
// explicit lookups: Require fails with ErrConfigMissing when no layer holds
// the key, GetOrDefault never fails and logs a warning when it falls back.
//
// Settings files use the setting paths directly:
//
//	# ~/.config/easyprint/config.toml
//	multipleStatements = false
//
//	[prints]
//	customSymbol = "*"
//	addCustomMessage = "%f:%l"
//
// In editor settings JSON the same paths live under the pythonEasyPrint
// namespace, e.g. "pythonEasyPrint.prints.customSymbol".
package config
