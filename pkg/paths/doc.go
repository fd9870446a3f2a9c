// Package paths resolves the directories dotfiler works with.
//
// Everything is computed from explicit Options: the CLI reads DOTFILER_HOME
// and passes it in, so nothing here consults process-wide overrides except
// the XDG base directories.
//
//   - Home: where links are created (Options.Home, else the user's home)
//   - Source: the dotfiles directory (Options.Source, else the working directory)
//   - StateDir: $XDG_STATE_HOME/dotfiler, holding backups and the backup log
//   - ConfigDir: $XDG_CONFIG_HOME/dotfiler, holding the user config file
//
// # Usage
//
//	p, err := paths.Resolve(paths.Options{Source: "~/dotfiles"})
//	if err != nil {
//	    return err
//	}
//	target := p.Target("bashrc", true) // /home/user/.bashrc
package paths
