// Package loader provides asynchronous asset loaders and the handles
// they hand out.
//
// A loader's Load returns immediately: the fetch runs on its own
// goroutine and the returned Handle exposes the completion state. Loads
// are deduplicated per path, so an in-flight fetch is never duplicated
// no matter how often the same path is requested. A failed fetch is
// forgotten once complete, so a later Load for the same path retries it.
//
// # Usage
//
//	ld := loader.NewFile("assets")
//	h := ld.Load("textures/grass.png")
//	if err := h.Wait(ctx); err != nil {
//		// fetch failed; a later Load for the path retries
//	}
//	data, _ := h.Bytes()
//
// Handles are small values sharing one underlying fetch; copy them
// freely.
package loader
