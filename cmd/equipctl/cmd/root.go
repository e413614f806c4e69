// Package cmd implements the equipctl command line client.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ghuser/equipstore/pkg/equipclient"
)

const defaultServer = "http://localhost:8080"

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "equipctl",
		Short: "Command line client for the equipstore registry",
		Long: `equipctl talks to an equipstore server over its HTTP API.

The server address is taken from, in order:
  --server flag
  EQUIPCTL_SERVER environment variable
  "server" key in the config file (default: ~/.config/equipctl/config.yaml)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.config/equipctl/config.yaml)")
	root.PersistentFlags().StringP("server", "s", defaultServer, "equipstore server base URL")
	root.PersistentFlags().Duration("timeout", 10*time.Second, "request timeout")
	_ = v.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout"))

	newClient := func() *equipclient.Client {
		return equipclient.New(v.GetString("server"))
	}
	timeout := func() time.Duration {
		return v.GetDuration("timeout")
	}

	root.AddCommand(
		newRegisterCmd(newClient, timeout),
		newGetCmd(newClient, timeout),
		newUpdateCmd(newClient, timeout),
		newAlterCmd(newClient, timeout),
		newOrdersCmd(newClient, timeout),
		newDataCmd(newClient, timeout),
	)
	return root
}

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("EQUIPCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(filepath.Join(home, ".config", "equipctl"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func formatEquipment(e *equipclient.Equipment) string {
	return fmt.Sprintf("Id: %d, Name: %s, Supplier: %s, Amount: %d, Lower bound: %d, Order quantity: %d",
		e.ID, e.Name, e.Supplier, e.Amount, e.LowerBound, e.OrderQuantity)
}
