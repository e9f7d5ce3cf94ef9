// Package api provides the Lua API exposed to easyprint scripts.
//
// Scripts reach the host through the "ep" module, which aggregates the
// registered submodules:
//
//   - ep.buf: read the active document
//   - ep.cursor: read and move the primary selection
//   - ep.prints: resolve expressions and statements, run commands
//   - ep.config: read and override settings
//   - ep.log: write to the host log
//
// A script typically resolves what is under the cursor and then runs a
// command:
//
//	local ep = require("ep")
//	ep.cursor.select(3, 5)
//	for _, expr in ipairs(ep.prints.expressions()) do
//	    ep.log.info(expr)
//	end
//	ep.prints.run("type")
//
// Lines and columns are 1-based on the Lua side.
package api
