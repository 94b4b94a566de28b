// Package boardview holds the pure rules that turn persisted tasks and boards into
// the board's derived view state: statistics, filtering, per-column ordering and
// the merged board list. Both the API and the terminal client use it, so the server
// and the client always agree on what a board looks like.
package boardview
