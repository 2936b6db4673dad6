// Package profiler optionally starts Google Cloud Profiler for the
// daemon, gated on an environment variable so it costs nothing when
// unset.
package profiler

import (
	"log"
	"os"

	"cloud.google.com/go/profiler"
)

// Init starts the profiler iff GOOGLE_CLOUD_PROFILER_ENABLED is set.
func Init(svcName, version string) {
	if os.Getenv("GOOGLE_CLOUD_PROFILER_ENABLED") == "" {
		return
	}
	err := profiler.Start(profiler.Config{
		Service:        svcName,
		ServiceVersion: version,
		MutexProfiling: true,
		AllocForceGC:   true,
	})
	if err != nil {
		log.Printf("could not initialize profiler: %s", err.Error())
	}
}
