// updatedns updates DigitalOcean DNS records when the public IPv4
// address of the host changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/syslog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/breml/rootcerts"
	"github.com/fatih/color"
	"github.com/qdm12/gosplash"
	"github.com/qdm12/log"
	"github.com/updatedns/updatedns/internal/config"
	"github.com/updatedns/updatedns/internal/models"
	"github.com/updatedns/updatedns/internal/persistence"
	"github.com/updatedns/updatedns/internal/provider/providers/digitalocean"
	publicipdns "github.com/updatedns/updatedns/internal/publicip/dns"
	"github.com/updatedns/updatedns/internal/shoutrrr"
	"github.com/updatedns/updatedns/internal/update"
)

//nolint:gochecknoglobals
var (
	version = "unknown"
	commit  = "unknown"
	date    = "an unknown date"
)

func main() {
	os.Exit(_main(os.Args, time.Now))
}

func _main(args []string, timeNow func() time.Time) (exitCode int) {
	buildInfo := models.BuildInformation{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	flagSet := flag.NewFlagSet("updatedns", flag.ContinueOnError)
	noColor := flagSet.Bool("no-color", false, "do not color messages")
	useSyslog := flagSet.Bool("syslog", false,
		"send messages to the system log instead of the standard streams")
	verbose := flagSet.Bool("verbose", false, "print informational messages")
	showVersion := flagSet.Bool("version", false, "print the program version and exit")
	flagSet.Usage = func() {
		fmt.Fprintln(flagSet.Output(), "updatedns - version "+buildInfo.VersionString())
		fmt.Fprintln(flagSet.Output(), "")
		fmt.Fprintln(flagSet.Output(),
			"Updates DigitalOcean DNS records when the public IPv4 address of this host changes.")
		fmt.Fprintln(flagSet.Output(), "")
		fmt.Fprintln(flagSet.Output(), "Usage: updatedns [options] configuration-file")
		flagSet.PrintDefaults()
	}
	err := flagSet.Parse(args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *showVersion {
		fmt.Println("updatedns " + buildInfo.VersionString())
		return 0
	}

	if flagSet.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Incorrect number of arguments.")
		flagSet.Usage()
		return 1
	}
	configFilepath := flagSet.Arg(0)

	if *noColor {
		color.NoColor = true
	}

	logLevel := log.LevelWarn
	if *verbose {
		logLevel = log.LevelInfo
	}
	logOptions := []log.Option{log.SetLevel(logLevel)}
	if *useSyslog {
		syslogWriter, err := syslog.New(syslog.LOG_INFO|syslog.LOG_USER, "updatedns")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error: opening system log: "+err.Error())
			return 1
		}
		logOptions = append(logOptions, log.SetWriters(syslogWriter))
	}
	logger := log.New(logOptions...)

	if *verbose {
		printSplash(buildInfo)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	err = run(ctx, configFilepath, logger, timeNow)
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	return 0
}

func run(ctx context.Context, configFilepath string,
	logger log.LoggerInterface, timeNow func() time.Time) (err error) {
	settings, err := config.Read(configFilepath)
	if err != nil {
		return err
	}
	settings.SetDefaults()
	err = settings.Validate()
	if err != nil {
		return fmt.Errorf("configuration validation: %w", err)
	}
	logger.Info(settings.String())

	token, err := config.ReadToken(settings.TokenFilepath)
	if err != nil {
		return err
	}

	providerClient, err := digitalocean.New(token)
	if err != nil {
		return fmt.Errorf("creating DigitalOcean client: %w", err)
	}

	fetcher, err := publicipdns.New(publicipdns.SetTimeout(settings.EchoTimeout))
	if err != nil {
		return fmt.Errorf("creating public IP fetcher: %w", err)
	}

	notifier, err := shoutrrr.New(shoutrrr.Settings{
		Addresses: settings.ShoutrrrAddresses,
		Logger:    logger.New(log.SetComponent("shoutrrr")),
	})
	if err != nil {
		return fmt.Errorf("creating notification client: %w", err)
	}

	httpClient := &http.Client{Timeout: settings.HTTPTimeout}
	defer httpClient.CloseIdleConnections()

	persistentLog := persistence.NewLog(settings.LogFilepath)

	runner := update.NewRunner(settings.Domains, fetcher, persistentLog,
		providerClient, httpClient, logger, notifier, timeNow)

	err = runner.Run(ctx)
	if err != nil {
		notifier.Notify(err.Error())
		return err
	}
	return nil
}

func printSplash(buildInfo models.BuildInformation) {
	splashSettings := gosplash.Settings{
		User:       "updatedns",
		Repository: "updatedns",
		Version:    buildInfo.Version,
		Commit:     buildInfo.Commit,
		BuildDate:  buildInfo.Date,
	}
	for _, line := range gosplash.MakeLines(splashSettings) {
		fmt.Println(line)
	}
}
