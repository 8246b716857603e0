package engine

import "github.com/lockplane/cortex/step"

// Plugin is a Postgres extension the engine installs during init
// bootstrap. Timescale requires CASCADE to pull in its dependencies,
// matching setup_initial_version's special case for it.
type Plugin int

const (
	Postgis Plugin = iota
	Timescale
)

func (p Plugin) extensionSQL() string {
	switch p {
	case Postgis:
		return "CREATE EXTENSION IF NOT EXISTS postgis"
	case Timescale:
		return "CREATE EXTENSION IF NOT EXISTS timescaledb CASCADE"
	default:
		return ""
	}
}

// Config holds engine-wide settings. Plugins is meaningful for
// relational (Postgres) engines only; document-backend configs leave
// it empty.
type Config struct {
	// SupportedDBVersions bounds the backend server versions this
	// engine instance was validated against: [min, max].
	SupportedDBVersions [2]step.Version
	Plugins              []Plugin
	DefaultMode          step.ExecutionMode
}
