// Package launch implements the two trial forecast launchers: the immediate
// best-data forecast launch and the queued MOGREPS-UK cross-section run.
//
// Each launcher builds an explicit environment once per invocation and hands
// it to the invoked program. The launchers never mutate their own process
// environment; everything the external programs read travels through Env.
package launch

import (
	"os"

	"github.com/aatumaykin/wxlaunch/internal/config"
	"github.com/aatumaykin/wxlaunch/internal/cycle"
)

// Var is a single exported environment variable.
type Var struct {
	Name  string
	Value string
}

// Env is the set of variables exported to an invoked program, in export order.
type Env struct {
	vars []Var
}

// Vars returns the exported variables in order.
func (e Env) Vars() []Var {
	return e.vars
}

// Lookup returns the value of a named variable.
func (e Env) Lookup(name string) (string, bool) {
	for _, v := range e.vars {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Environ renders the parent process environment with the exported variables
// appended, suitable for exec.Cmd.Env.
func (e Env) Environ() []string {
	environ := os.Environ()
	for _, v := range e.vars {
		environ = append(environ, v.Name+"="+v.Value)
	}
	return environ
}

// ImmediateEnv builds the environment for the best-data forecast program.
// The cycle timestamps are exported in the three formats the program reads.
func ImmediateEnv(cfg *config.Config, c cycle.Cycle) Env {
	return Env{vars: []Var{
		{Name: "USER", Value: cfg.Site.User},
		{Name: "BEST_DATA_DIR", Value: cfg.Paths.BestDataDir},
		{Name: "SCRATCH_DIR", Value: cfg.Paths.ScratchDir},
		{Name: "HTML_DIR", Value: cfg.Paths.HTMLDir},
		{Name: "DATA_FILE", Value: cfg.DataFilePath()},
		{Name: "START_DATE", Value: c.Date()},
		{Name: "START_TIME", Value: c.Hour()},
		{Name: "START_DATE_TIME", Value: c.DateTime()},
		{Name: "URL_START", Value: cfg.Site.URLStart},
		{Name: "MASS_DIR", Value: cfg.Paths.MassDir},
	}}
}

// QueuedEnv builds the environment for the MOGREPS-UK cross-section program.
// The cycle is deliberately absent: the queued launcher only uses it to name
// the copied log files, the program derives its own issue times.
func QueuedEnv(cfg *config.Config) Env {
	return Env{vars: []Var{
		{Name: "USER", Value: cfg.Site.User},
		{Name: "MOG_UK_DIR", Value: cfg.Paths.MogUKDir},
		{Name: "SCRATCH_DIR", Value: cfg.Paths.ScratchDir},
		{Name: "HTML_DIR", Value: cfg.Paths.HTMLDir},
		{Name: "SIDEBAR", Value: cfg.SidebarPath()},
		{Name: "URL_START", Value: cfg.Site.URLStart},
		{Name: "MASS_DIR", Value: cfg.Paths.MassDir},
	}}
}
