// Package cli implements the nextmatch command.
//
// nextmatch looks up the next fixture of a team across every configured
// competition and reports it as text or JSON. The process exit code tells a
// scheduler whether the match is tomorrow, so the command can gate a
// notification step. The debug subcommand dumps raw fixture rows of a page.
package cli
