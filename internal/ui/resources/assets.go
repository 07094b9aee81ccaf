// Package resources serves the static assets the widget markup references:
// theme stylesheets, the client tree engine and its integration script.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"
