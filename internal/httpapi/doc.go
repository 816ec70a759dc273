// Package httpapi exposes analysis runs over HTTP.
//
// Routes are mounted on a chi router under /api. Starting an analysis runs
// the pre-flight duration check synchronously so too-short videos are
// rejected with 422 before any job is registered. Progress reads the
// in-memory job mirror and falls back to the report store once the mirror
// entry is gone. The stream endpoint upgrades to a websocket and pushes one
// JSON progress event per mirror change until the run is terminal.
package httpapi
