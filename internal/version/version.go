// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Solar system view, rise/transit/set summary, JSON snapshots
// 0.2.0 - HYG catalogue files, black-body star colours, time accelerators
// 0.1.0 - Initial release: stereographic sky view, Sun, Moon and planets, asterisms
