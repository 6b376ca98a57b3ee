package main

import (
	"context"
	"fmt"
	"io"

	"github.com/justinpbarnett/labtop/internal/ui/panels"
	"github.com/justinpbarnett/labtop/internal/update"
)

func runVersion(w io.Writer, repo string) {
	fmt.Fprintf(w, "labtop version %s\n", panels.Version)

	if panels.Version == "dev" {
		fmt.Fprintf(w, "Development build, update check against %s skipped.\n", repo)
		return
	}

	rel, err := update.CheckForUpdate(context.Background(), panels.Version, repo)
	if err != nil {
		fmt.Fprintf(w, "Update check failed: %v\n", err)
		return
	}

	if rel != nil {
		fmt.Fprintln(w, rel.Notice(panels.Version))
	} else {
		fmt.Fprintln(w, "You are up to date.")
	}
}

func runUpdate(stdout, stderr io.Writer, repo string) int {
	rel, err := update.Apply(context.Background(), panels.Version, repo)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if update.CompareVersions(panels.Version, rel.Version) >= 0 {
		fmt.Fprintf(stdout, "labtop %s is already the latest version.\n", panels.Version)
		return 0
	}
	fmt.Fprintf(stdout, "Updated labtop %s -> v%s\n", panels.Version, rel.Version)
	return 0
}
