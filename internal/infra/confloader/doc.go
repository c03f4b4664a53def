// Package confloader loads layered configuration with koanf.
//
// Sources merge in priority order: the YAML config file, then
// CUSTRACK_* environment variables, then explicit overrides supplied
// by CLI flags. A fsnotify-based watcher reloads the file when it
// changes on disk.
package confloader
