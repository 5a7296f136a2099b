package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/codecollect/internal/config"
)

const (
	initUse                   = "init"
	initShortDescription      = "write a default configuration file"
	initLongDescription       = `Write a commented default configuration to ./.codecollect.yaml,
or with --global to ~/.codecollect/config.yaml. Existing files are kept unless --force is given.`
	initGlobalFlagName        = "global"
	initGlobalFlagDescription = "write the global configuration instead of the local one"
	initForceFlagName         = "force"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initWrittenMessageFormat  = "Configuration written to '%s'."
)

func createInitCommand(dependencies Dependencies) *cobra.Command {
	var writeGlobal bool
	var overwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			destinationPath, initErr := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            overwrite,
				WorkingDirectory: dependencies.WorkingDirectory,
			})
			if initErr != nil {
				return initErr
			}
			dependencies.Logger.Sugar().Infof(initWrittenMessageFormat, destinationPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &writeGlobal, initGlobalFlagName, "", false, initGlobalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &overwrite, initForceFlagName, "", false, initForceFlagDescription)
	return initCommand
}
