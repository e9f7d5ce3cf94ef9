// Package prints provides the handler that inserts print and logging
// statements.
//
// Every statement kind is an action in the easyprint namespace:
//   - easyprint.print, easyprint.type, easyprint.dir, easyprint.repr,
//     easyprint.id, easyprint.help: print family
//   - easyprint.custom: the configured custom statement
//   - easyprint.debug ... easyprint.critical: logging calls
//   - easyprint.initPython2: the Python 2 print_function header
//
// A print action resolves the expressions around the primary selection,
// resolves the statement template once, and inserts one statement per
// expression on its own line below the anchor line. Each insertion is a
// separate buffer transaction, applied in expression order.
package prints
