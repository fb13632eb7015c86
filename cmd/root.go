package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	dsn        string
	driverFlag string

	log = logrus.New()
)

var RootCmd = &cobra.Command{
	Use:   "synth-pump",
	Short: "A synthetic tabular data generator and evaluator",
	Long: `
  ______   ___   _ _____ _   _   ____  _   _ __  __ ____
 / ___\ \ / / \ | |_   _| | | | |  _ \| | | |  \/  |  _ \
 \___ \\ V /|  \| | | | | |_| | | |_) | | | | |\/| | |_) |
  ___) || | | |\  | | | |  _  | |  __/| |_| | |  | |  __/
 |____/ |_| |_| \_| |_| |_| |_| |_|    \___/|_|  |_|_|

SYNTH PUMP 🦅 - Synthetic Data Generator & Fidelity Evaluator
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(viper.GetString("settings.log_level"))
		if err != nil {
			level = logrus.InfoLevel
		}
		log.SetLevel(level)
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./synth-pump.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN) for table inputs")
	RootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Database driver (mysql, postgres, sqlserver, oracle)")

	viper.SetDefault("settings.log_level", "info")
	viper.SetDefault("settings.default_rows", 1000)
	viper.SetDefault("settings.categorical_threshold", 10)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("synth-pump")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
