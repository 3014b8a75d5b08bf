package main

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	transportcatalogue "github.com/theoremus-urban-solutions/transport-catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/config"
	"github.com/theoremus-urban-solutions/transport-catalogue/gtfs"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal"
	"github.com/theoremus-urban-solutions/transport-catalogue/requests"
)

func main() {
	app := &cli.App{
		Name:        "transport-catalogue",
		Usage:       "build and query a transport catalogue snapshot",
		Description: "make_base reads base requests from stdin and writes a snapshot; process_requests answers stat requests from a snapshot",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"TRANSPORT_CATALOGUE_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "log at debug level",
				EnvVars: []string{"TRANSPORT_CATALOGUE_DEBUG"},
			},
		},
		Before: func(c *cli.Context) error {
			if err := config.LoadAppConfig(c.String("config")); err != nil {
				return err
			}
			internal.InitLogging(config.Config.Logging.Level, config.Config.Logging.Format, c.Bool("debug"))
			return nil
		},

		Commands: []*cli.Command{
			{
				Name:  "make_base",
				Usage: "build the catalogue from stdin and write the snapshot",
				Action: func(c *cli.Context) error {
					return transportcatalogue.MakeBase(os.Stdin)
				},
			},
			{
				Name:  "process_requests",
				Usage: "answer stat requests from stdin against a snapshot",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "indent",
						Usage: "spaces per level in the response, 0 for compact (overrides config)",
						Value: -1,
					},
				},
				Action: func(c *cli.Context) error {
					indent := config.Config.Output.Indent
					if c.Int("indent") >= 0 {
						indent = c.Int("indent")
					}
					return transportcatalogue.ProcessRequests(os.Stdin, os.Stdout, indent)
				},
			},
			{
				Name:  "import_gtfs",
				Usage: "convert a GTFS static feed into a make_base document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "gtfs",
						Usage:    "path or URL of the GTFS zip",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "snapshot file the document should point make_base at",
						Value: "transport_catalogue.db",
					},
					&cli.Float64Flag{
						Name:  "wait",
						Usage: "bus wait time in minutes",
						Value: gtfs.DefaultRouting.BusWaitTime,
					},
					&cli.Float64Flag{
						Name:  "velocity",
						Usage: "bus velocity in km/h",
						Value: gtfs.DefaultRouting.BusVelocity,
					},
				},
				Action: importGTFS,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func importGTFS(c *cli.Context) error {
	data, err := newFetcher().fetch(c.String("gtfs"))
	if err != nil {
		return err
	}
	feed, err := gtfs.LoadFromBytes(data)
	if err != nil {
		return err
	}
	doc := feed.MakeBaseDocument(c.String("file"), requests.RoutingSettings{
		BusWaitTime: c.Float64("wait"),
		BusVelocity: c.Float64("velocity"),
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
