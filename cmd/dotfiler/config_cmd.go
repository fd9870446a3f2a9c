package dotfiler

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/dotfiler/pkg/config"
	"github.com/arthur-debert/dotfiler/pkg/errors"
	"github.com/arthur-debert/dotfiler/pkg/filesystem"
	"github.com/arthur-debert/dotfiler/pkg/paths"
	"github.com/spf13/cobra"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
	}
	cmd.AddCommand(newConfigShowCmd(flags))
	cmd.AddCommand(newConfigInitCmd(flags))
	return cmd
}

func newConfigShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			content, err := config.Render(cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(cfg.Files) == 0 {
				fmt.Fprint(w, MsgConfigDefaultOnly)
			}
			for _, f := range cfg.Files {
				fmt.Fprintf(w, MsgConfigLoadedFrom, f)
			}
			fmt.Fprint(w, content)
			return nil
		},
	}
}

func newConfigInitCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newPrinter(cmd, flags)
			if err != nil {
				return err
			}

			target := flags.configFile
			if target == "" {
				target = paths.Paths{ConfigDir: paths.ConfigDir()}.UserConfigPath()
			}

			fsys := filesystem.NewOS()
			if filesystem.Exists(fsys, target) && !force {
				return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExist, target).
					WithDetail("path", target)
			}

			if flags.dryRun {
				out.DryRun(MsgConfigWouldWrite, target)
				return nil
			}

			if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(target))
			}
			if err := fsys.WriteFile(target, []byte(config.GenerateConfigContent()), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
			}
			out.Success(MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}
