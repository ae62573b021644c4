/*
Package gtfs loads the static transit feed into an immutable in-memory
store.

The feed is a directory (or zip archive) of GTFS CSV files: stops.txt,
routes.txt, trips.txt and stop_times.txt are required, calendar.txt is
optional. A missing required file or a malformed required column fails the
load with *LoadError; the caller is expected to treat that as fatal rather
than continue with an empty dataset.

Load once at startup, before queries are dispatched:

	store, err := gtfs.LoadFromDir("feed/")
	if err != nil {
	    log.Fatal().Err(err).Msg("feed load failed")
	}

The store never changes after loading, so all accessors are safe for
concurrent use without locking. Stops preserve feed file order, which the
station resolver relies on for stable match ordering.
*/
package gtfs
