// Package plugin runs Lua scripts against the active document.
//
// A Host owns one sandboxed Lua state with the ep module preloaded and
// runs scripts through the dispatcher, so a script can do anything a
// command can. The Loader finds named scripts on disk, and the script
// handler exposes them as actions:
//
//	script.run       run Args.Text, or the file named by the "path" extra
//	script.<name>    run a discovered script
package plugin
