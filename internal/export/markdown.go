package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sadopc/trackit/internal/model"
)

// ToMarkdown renders one workout as a Markdown document.
func ToMarkdown(w *model.Workout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s – %s\n\n", w.Type, model.FormatDate(w.Date))

	if len(w.Exercises) > 0 {
		b.WriteString("## Übungen\n\n")
		for _, ex := range w.Exercises {
			name := ex.Name
			if name == "" {
				name = "Unbenannte Übung"
			}
			fmt.Fprintf(&b, "### %s\n", name)
			for _, set := range ex.Sets {
				fmt.Fprintf(&b, "- %s: %d Wdh | RPE %d | Notiz: %s\n", set.Label, set.Reps, set.RPE, orDash(set.Note))
			}
			b.WriteString("\n")
		}
	}

	if w.Finisher != nil {
		fmt.Fprintf(&b, "## Finisher (%s)\n\n", w.Finisher.Type)
		for _, entry := range w.Finisher.Entries {
			name := entry.Name
			if name == "" {
				name = "Unbenannt"
			}
			fmt.Fprintf(&b, "### %s\n", name)
			if w.Finisher.Type == model.FinisherNormal && len(entry.Sets) > 0 {
				for _, set := range entry.Sets {
					fmt.Fprintf(&b, "- %s: %d Wdh | RPE %d | Notiz: %s\n", set.Label, set.Reps, set.RPE, orDash(set.Note))
				}
			} else {
				fmt.Fprintf(&b, "- Ergebnis: %s | RPE %d\n", orDash(entry.Result), entry.RPE)
				fmt.Fprintf(&b, "- Notiz: %s\n", orDash(entry.Note))
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// WriteMarkdown writes the workout's Markdown rendering into dir, named
// after the workout, and returns the full path.
func WriteMarkdown(w *model.Workout, dir string) (string, error) {
	name := w.Name
	if name == "" {
		name = w.WorkoutID
	}
	path := filepath.Join(dir, sanitizeFilename(name)+".md")
	if err := os.WriteFile(path, []byte(ToMarkdown(w)), 0o644); err != nil {
		return "", fmt.Errorf("write markdown file: %w", err)
	}
	return path, nil
}

func orDash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "–"
	}
	return s
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
}
