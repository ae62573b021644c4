package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	lib "github.com/theoremus-urban-solutions/metro-assist"
	"github.com/theoremus-urban-solutions/metro-assist/config"
	"github.com/theoremus-urban-solutions/metro-assist/gtfs"
	"github.com/theoremus-urban-solutions/metro-assist/internal/logger"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	configPath := flag.String("config", "", "path to config.yml (default: config.yml)")
	call := flag.String("call", "journey", "oneshot call: journey|routes|fare|schedule|station|nearby")
	query := flag.String("q", "", "free-text journey query")
	from := flag.String("from", "", "origin station name")
	to := flag.String("to", "", "destination station name")
	station := flag.String("station", "", "station name for schedule/station/nearby calls")
	at := flag.String("at", "", "time of day HH:MM for schedule calls (default: now)")
	limit := flag.Int("limit", 0, "max departures for schedule calls")
	radius := flag.Float64("radius", 0, "radius in km for nearby calls")
	flag.Parse()

	// .env may override the feed location and port without editing config.yml.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if v := os.Getenv("METRO_ASSIST_FEED_DIR"); v != "" {
		cfg.Feed.Dir = v
	}
	if v := os.Getenv("METRO_ASSIST_FEED_ZIP"); v != "" {
		cfg.Feed.Zip = v
	}

	log := logger.Init(logger.Config{
		Level:    cfg.Logging.Level,
		Console:  cfg.Logging.Console,
		FilePath: cfg.Logging.File,
	})

	// The feed load is the readiness barrier: nothing serves until it
	// has fully succeeded, and a malformed feed fails the process here.
	var store *gtfs.FeedStore
	switch {
	case cfg.Feed.Dir != "":
		store, err = gtfs.LoadFromDir(cfg.Feed.Dir)
	case cfg.Feed.Zip != "":
		store, err = gtfs.LoadFromZip(cfg.Feed.Zip)
	default:
		err = fmt.Errorf("no feed configured: set feed.dir or feed.zip")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("feed load failed")
	}
	stops, routes, trips, stopTimes := store.Counts()
	log.Info().
		Int("stops", stops).
		Int("routes", routes).
		Int("trips", trips).
		Int("stop_times", stopTimes).
		Msg("feed loaded")

	assistant := lib.New(store, cfg)

	switch *mode {
	case "serve":
		srv := lib.NewServer(assistant, cfg.Server.Port, log)
		srv.Start()
		srv.WaitForShutdown()
	case "oneshot":
		result, err := oneshot(assistant, *call, oneshotArgs{
			query: *query, from: *from, to: *to,
			station: *station, at: *at, limit: *limit, radius: *radius,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("encode result")
		}
		fmt.Println(string(out))
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(1)
	}
}

type oneshotArgs struct {
	query, from, to, station, at string
	limit                        int
	radius                       float64
}

func oneshot(a *lib.Assistant, call string, args oneshotArgs) (any, error) {
	switch strings.ToLower(call) {
	case "journey":
		if args.query == "" {
			return nil, fmt.Errorf("journey call needs -q")
		}
		return a.PlanJourney(args.query)
	case "routes":
		if args.from == "" || args.to == "" {
			return nil, fmt.Errorf("routes call needs -from and -to")
		}
		return a.FindRoutes(args.from, args.to)
	case "fare":
		if args.from == "" || args.to == "" {
			return nil, fmt.Errorf("fare call needs -from and -to")
		}
		return a.CalculateFare(args.from, args.to)
	case "schedule":
		name := args.station
		if name == "" {
			name = args.from
		}
		if name == "" {
			return nil, fmt.Errorf("schedule call needs -station or -from")
		}
		if args.to != "" {
			return a.RouteSchedule(name, args.to)
		}
		at := gtfs.NowTimeOfDay(time.Now())
		if args.at != "" {
			v := args.at
			if strings.Count(v, ":") == 1 {
				v += ":00"
			}
			parsed, err := gtfs.ParseTimeOfDay(v)
			if err != nil {
				return nil, err
			}
			at = parsed
		}
		return a.StationSchedule(name, at)
	case "station":
		if args.station == "" {
			return nil, fmt.Errorf("station call needs -station")
		}
		return a.StationDetails(args.station)
	case "nearby":
		if args.station == "" {
			return nil, fmt.Errorf("nearby call needs -station")
		}
		return a.NearbyStations(args.station, args.radius)
	default:
		return nil, fmt.Errorf("unknown call %q", call)
	}
}
