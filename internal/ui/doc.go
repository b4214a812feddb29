// Package ui contains the builtin Bubble Tea picker, used when fzf is not
// available or not wanted.
//
// The Model owns the feed lines, the filter input, and the cursor. Key
// presses either move the cursor, finish the program (enter, esc, ctrl+c),
// or are forwarded to the text input, after which the visible items are
// recomputed with the same matcher the headless filter uses. Separator lines
// are shown while the query is empty and skipped by the cursor.
package ui
