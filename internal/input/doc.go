// Package input defines the actions that commands, scripts and the CLI
// hand to the dispatcher.
//
// An action is a name plus loosely typed arguments:
//
//	input.Action{
//	    Name:   "easyprint.print",
//	    Source: input.SourceCLI,
//	}
//
// Print actions are named after the statement kind they insert. Document
// actions (comment, delete, jump) scan the whole buffer.
package input
