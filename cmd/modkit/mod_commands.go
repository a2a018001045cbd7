package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/modkit/internal/asset"
	"github.com/cory-johannsen/modkit/internal/asset/mod"
)

type modFlags struct {
	name     string
	folder   string
	modInfo  string
	requires []string
	includes []string
}

func (f *modFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Mod name")
	cmd.Flags().StringVar(&f.folder, "folder", "", "Mod folder (default <workspace.mods_dir>/<name>)")
	cmd.Flags().StringVar(&f.modInfo, "modinfo", "", "Mod info file name (default workspace.modinfo_filename)")
	cmd.Flags().StringSliceVar(&f.requires, "requires", nil, "Required mod names")
	cmd.Flags().StringSliceVar(&f.includes, "includes", nil, "Included mod names")
}

func (f *modFlags) descriptor(ctx *commandContext) *mod.Descriptor {
	ws := ctx.cfg().Workspace
	folder := f.folder
	if folder == "" && strings.TrimSpace(f.name) != "" {
		folder = filepath.Join(ws.ModsDir, f.name)
	}
	modInfo := f.modInfo
	if modInfo == "" {
		modInfo = ws.ModInfoFilename
	}
	d := mod.NewDescriptor(f.name, folder, modInfo)
	d.Info().SetRequires(f.requires)
	d.Info().SetIncludes(f.includes)
	return d
}

func newModCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mod",
		Short: "Create and inspect mod descriptors",
	}
	cmd.AddCommand(newModBuildCommand(ctx))
	cmd.AddCommand(newModSaveCommand(ctx))
	cmd.AddCommand(newModShowCommand(ctx))
	return cmd
}

func newModBuildCommand(ctx *commandContext) *cobra.Command {
	var flags modFlags
	var savePath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Create the mod folder and its info file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := flags.descriptor(ctx)
			if err := buildProblems(d); err != nil {
				return err
			}
			if err := d.BuildModStructure(); err != nil {
				return err
			}
			ctx.log().Info("built mod",
				zap.String("name", d.Name()),
				zap.String("folder", d.Folder()),
				zap.String("modinfo", d.ModInfoFile()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", d.ModInfoFile())

			if savePath != "" {
				if err := d.SaveToFile(savePath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", savePath)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&savePath, "save", "", "Also save the descriptor to this file")
	return cmd
}

func newModSaveCommand(ctx *commandContext) *cobra.Command {
	var flags modFlags

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save a mod descriptor in the flat save format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := flags.descriptor(ctx)
			path := d.DefaultSaveFileName()
			if len(args) == 1 {
				path = args[0]
			}
			if err := d.SaveToFile(path); err != nil {
				return err
			}
			ctx.log().Debug("saved mod descriptor", zap.String("path", path))
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newModShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display a saved mod descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := mod.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			mergeBuiltInfo(ctx, d)
			if jsonOutput {
				return writeJSON(cmd, d.Info())
			}
			printMod(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the mod info as JSON")
	return cmd
}

// mergeBuiltInfo fills d's requires and includes from its info file when the
// mod has been built. The flat save format does not carry them.
func mergeBuiltInfo(ctx *commandContext, d *mod.Descriptor) {
	path := d.ModInfoFile()
	if !asset.IsRegularFile(path) {
		return
	}
	info, err := mod.LoadInfoFile(path)
	if err != nil {
		ctx.log().Warn("ignoring unreadable mod info file", zap.String("path", path), zap.Error(err))
		return
	}
	d.Info().SetRequires(info.Requires())
	d.Info().SetIncludes(info.Includes())
}

func printMod(w io.Writer, d *mod.Descriptor) {
	fmt.Fprintf(w, "Name:      %s\n", d.Name())
	fmt.Fprintf(w, "Folder:    %s\n", d.Folder())
	fmt.Fprintf(w, "Mod info:  %s\n", d.ModInfoFilename())
	fmt.Fprintf(w, "Requires:  %s\n", strings.Join(d.Info().Requires(), ", "))
	fmt.Fprintf(w, "Includes:  %s\n", strings.Join(d.Info().Includes(), ", "))
	fmt.Fprintf(w, "Built:     %s\n", yesNo(d.ModInfoValid() && asset.IsRegularFile(d.ModInfoFile())))
	fmt.Fprintf(w, "Buildable: %s\n", yesNo(d.ReadyToBuild()))
}

// buildProblems names every readiness check d fails.
func buildProblems(d *mod.Descriptor) error {
	var errs []error
	if !d.NameValid() {
		errs = append(errs, errors.New("mod name is empty"))
	}
	if !d.ModInfoFilenameValid() {
		errs = append(errs, errors.New("mod info file name is empty"))
	}
	switch {
	case d.Folder() == "":
		errs = append(errs, errors.New("mod folder is not set"))
	case !d.DirectoryReadyToBuild():
		errs = append(errs, fmt.Errorf("parent of mod folder %q does not exist", d.Folder()))
	}
	if len(errs) > 0 {
		return fmt.Errorf("mod is not ready to build: %w", errors.Join(errs...))
	}
	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
