// Package cli provides the interactive coursekeeper command-line client.
//
// It wires configuration, the local session database, the API services and
// a REPL. Typical flow: restore a cached login if one exists, start a
// background connectivity watcher, and execute user commands.
//
// Commands:
//   - register / login / logout / whoami
//   - courses: list courses (Student or Instructor)
//   - course: create a course (Instructor)
//   - enroll: enroll in a course by title (Student)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
