package main

import (
	"fmt"

	"github.com/henfal/mdubot"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	newestOnly := !c.All

	var code *string
	if c.Code != "" {
		code = &c.Code
	}

	if c.Kind == "" || c.Kind == "courses" {
		courses, err := deps.Courses.FindCourses(deps.Ctx, mdubot.CourseFilter{Code: code, NewestOnly: newestOnly})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mdubot.ErrorMessage(err))
			return err
		}
		for _, course := range courses {
			printEntry(deps, "course", course.Code, course.Name, course.ValidFrom.Format("2006-01-02"), course.Active)
		}
	}

	if c.Kind == "" || c.Kind == "programs" {
		programs, err := deps.Programs.FindPrograms(deps.Ctx, mdubot.ProgramFilter{Code: code, NewestOnly: newestOnly})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mdubot.ErrorMessage(err))
			return err
		}
		for _, program := range programs {
			printEntry(deps, "program", program.Code, program.Name, program.ValidFrom.Format("2006-01-02"), program.Active)
		}
	}

	return nil
}

func printEntry(deps *Dependencies, kind, code, name, validFrom string, active bool) {
	status := ""
	if !active {
		status = "  [inte aktuell]"
	}
	fmt.Fprintf(deps.Stdout, "%-8s %-8s %s  (giltig från %s)%s\n", kind, code, name, validFrom, status)
}
