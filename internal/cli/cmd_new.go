package cli

import (
	"fmt"

	"lifeplanner/internal/template"
)

const newHelp = `  new                          List available document templates
  new <template> [--date=<d>]  Create a dated document from a template`

func cmdNew(o *IO, planner *app, args []string) error {
	if hasHelpFlag(args) {
		printNewHelp(o)

		return nil
	}

	if len(args) == 0 {
		printTemplateCatalog(o)

		return nil
	}

	entry, ok := template.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown template: %s", args[0])
	}

	day, rest, err := parseDateFlag(args[1:])
	if err != nil {
		return err
	}

	if len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	path, err := planner.templates.Create(entry, day)
	if err != nil {
		return err
	}

	o.Println("created", path)

	return nil
}

func printTemplateCatalog(o *IO) {
	var current template.Category

	for _, entry := range template.Catalog() {
		if entry.Category != current {
			if current != "" {
				o.Println("")
			}

			current = entry.Category

			o.Println(string(current) + ":")
		}

		o.Printf("  %-16s %s\n", entry.Key, entry.Label)
	}
}

func printNewHelp(o *IO) {
	o.Println("Usage: lp new [template]")
	o.Println("")
	o.Println(newHelp)
}
