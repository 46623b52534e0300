// MIT License

//go:build !debug

package ddkit

// debugBuild is false in ordinary builds; compile with -tags debug to
// enable the verbose cache/GC statistics in Stats (spec.md: "Use of build
// tags").
const debugBuild = false
