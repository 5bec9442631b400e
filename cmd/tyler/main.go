package main

import (
	"os"
	"strconv"
	"strings"

	"tyler-cli/internal/cli"
)

func isTaskID(s string) bool {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil && id > 0
}

// rewriteDirectTaskLookupArgs makes `tyler <task-id>` behave like
// `tyler tasks show <task-id>`. Cobra treats the first non-flag token as a
// subcommand, so argv is rewritten before parsing. Persistent flags may come
// first (`tyler --dir ... 42`), so the first positional token is what gets
// inspected, not argv[1].
func rewriteDirectTaskLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":    true,
		"--server": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isTaskID(argv[i+1]) {
				out := make([]string, 0, len(argv)+2)
				out = append(out, argv[:i+1]...)
				out = append(out, "tasks", "show")
				out = append(out, argv[i+1:]...)
				return out
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if isTaskID(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "tasks", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectTaskLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
