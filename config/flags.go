package config

import (
	"flag"
	"fmt"
)

// Options are the command line switches. Zero values defer to Settings.
type Options struct {
	Terminal     bool
	Dump         bool
	Save         string
	MapDef       string
	Seed         int64
	SettingsPath string
}

// ParseFlags reads options from args, which exclude the program name
func ParseFlags(args []string) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("promage2", flag.ContinueOnError)
	fs.BoolVar(&opts.Terminal, "terminal", false, "Step through the map in the terminal")
	fs.BoolVar(&opts.Dump, "dump", false, "Print the final map as text and exit")
	fs.StringVar(&opts.Save, "save", "", "Write the map definition back to this file")
	fs.StringVar(&opts.MapDef, "map", "", "Map definition to generate")
	fs.Int64Var(&opts.Seed, "seed", 0, "Random seed, 0 keeps the settings value")
	fs.StringVar(&opts.SettingsPath, "settings", "settings.json", "Settings file")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if opts.Terminal && opts.Dump {
		return opts, fmt.Errorf("--terminal and --dump are exclusive")
	}
	return opts, nil
}

// Apply overrides settings with the options that were given
func (o Options) Apply(s *Settings) {
	if o.MapDef != "" {
		s.MapDef = o.MapDef
	}
	if o.Seed != 0 {
		s.Seed = o.Seed
	}
}
