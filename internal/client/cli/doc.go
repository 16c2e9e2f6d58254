// Package cli provides the interactive transkeeper command-line client.
//
// It wires configuration, the gRPC client and a REPL. While the REPL runs a
// background watcher pings the server and shows online/offline in the
// prompt.
//
// Commands:
//   - register, login, logout, delete [user]
//   - translate, reverse, speak, transcribe <file>
//   - history [n], clear, export
//   - users, promote <user>, all, reset <user> (admins)
//
// Audio is saved as translation_YYYYmmdd_HHMMSS.<ext> in the configured
// output directory; history exports are downloaded next to it.
package cli
