// Package watch implements the development-time guard behind
// `leakgate watch`: an fsnotify loop over the worktree that rescans
// files as they change and hands each incremental result to a callback.
//
// Watch mode is advisory. It never blocks anything, and unlike the hook
// path it reports both tiers at once, so a critical in one file does not
// hide warnings elsewhere.
package watch
