// Package task holds the task model and the pure operations on a task list.
//
// Every operation returns a new slice and leaves its input untouched, so a
// caller can keep the list it loaded and compare it with the result. The
// document codec reads and writes the JSON array persisted through the
// filesystem tools.
package task
