package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/config"
	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/server"
)

const releaseVersion = "0.1.0"

func newCmd(cfg *config.Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GREENBONDS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "greenbonds",
		Short:         "Session server for the green bonds investment party game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return server.Run(*cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.Bind, "bind", "b", cfg.Bind, "address to bind to (env: GREENBONDS_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on (env: GREENBONDS_PORT)")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "optional Postgres DSN for the session archive (env: GREENBONDS_DATABASE_URL)")
	fs.DurationVar(&cfg.RoomTTL, "room-ttl", cfg.RoomTTL, "time before stale rooms are reaped (env: GREENBONDS_ROOM_TTL)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "display additional output (env: GREENBONDS_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("greenbonds v{{.Version}}\n")

	return cmd
}

func main() {
	cfg := config.Default()
	cobra.CheckErr(newCmd(&cfg).Execute())
}
