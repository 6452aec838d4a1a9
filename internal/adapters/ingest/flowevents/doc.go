// Package flowevents streams flow events from JSON-lines files, gzip-compressed or plain
//
// - One event object per line; a literal null line is a missing event and is passed on as nil.
// - Malformed lines are skipped and counted, blank lines are ignored.
// - Compression is detected from the gzip magic bytes, not the file name.
package flowevents
