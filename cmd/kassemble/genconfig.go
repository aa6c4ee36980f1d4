package kassemble

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/kassemble/pkg/config"
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/spf13/cobra"
)

func newGenConfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateConfigContent()
			if err != nil {
				return err
			}
			if !write {
				_, err = fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
			}
			target := filepath.Join(cwd, config.ProjectFileName)
			f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
			if err != nil {
				if os.IsExist(err) {
					return errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExists, target).WithDetail("path", target)
				}
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", target).WithDetail("path", target)
			}
			defer func() { _ = f.Close() }()
			if _, err := f.WriteString(content); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", target).WithDetail("path", target)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}
