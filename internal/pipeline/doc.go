// Package pipeline wires the comparison stages together and persists the
// results.
//
// A Pipeline runs load → diff → threshold → extract → filter/pad → render
// strictly in sequence and then writes two artifacts into the configured
// output directory:
//
//	{stem1}_{stem2}_rectangles.png   the transparent highlight overlay
//	{stem1}_{stem2}_rectangles.json  the rectangles as [{x,y,w,h}, ...]
//
// The stems are the input file names without directory or extension, in
// argument order, so two comparisons of the same pair overwrite each other
// while different pairs never collide. Artifact writes are all-or-nothing:
// a failed run leaves neither file behind.
//
// # Concurrency
//
// A Pipeline holds only validated configuration and is safe for concurrent
// use. BatchProcessor builds on that to run many comparisons against one
// Pipeline with a bounded number of workers; each pair's outcome is
// reported individually and failures do not abort the batch.
package pipeline
