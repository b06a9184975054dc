// Package types holds context keys shared between the CLI command packages.
package types

type contextKey string

// AppKey stores the wired *app.App in the command context.
const AppKey contextKey = "app"

// JSONKey stores the --json output flag in the command context.
const JSONKey contextKey = "json"
