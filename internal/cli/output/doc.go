// Package output renders custrack command results.
//
// Three formats are supported: table (the default, with a wide mode
// exposing extra columns), json and yaml. Table rendering is driven
// by struct tags: `table:"-"` hides a column, `table:"wide"` shows it
// only in wide mode. A spinner covers long-running API calls on
// interactive terminals.
package output
