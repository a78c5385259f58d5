// Package level assembles a map from catalog templates one room per step.
//
// A [Generator] starts from a single seed room and moves through two phases:
//
//   - Growing, while fewer than AccelerateUntil rooms are placed: sample an
//     entrance count in [2, EntranceMax] and a square size in [1, SizeMax],
//     look up a random matching template and try to attach it. The lower
//     bound of two entrances keeps the frontier open.
//   - Filling, afterwards: scan entrance counts from 1 upwards and each
//     count's templates from last to first, attaching the first one that
//     fits. Dead ends are tried before anything that opens new entrances.
//
// Every step that cannot place a room within MaxAttempts samples fails the
// generator with GENERATION_STALLED.
//
// When no entrance is left open the attempt is complete. It is accepted if it
// has at least one spawn-capable room per team; the two spawn rooms whose
// centers are farthest apart become the anchors. Otherwise the generator
// discards everything, resets its arena and reseeds, and the host keeps
// stepping.
//
// # Hosting
//
// The generator never blocks and never sleeps. A host calls [Generator.Step]
// until it returns [Done] or [Failed]; [Generator.JustReset] tells it when to
// apply a back-off and the reset count lets it enforce a cap:
//
//	g, err := level.New(lib, rng, level.WithConfig(cfg))
//	for {
//	    status, err := g.Step()
//	    if status != level.InProgress {
//	        break
//	    }
//	}
//
// A Generator is owned by one goroutine. Readers may inspect rooms between
// steps or after Done.
package level
